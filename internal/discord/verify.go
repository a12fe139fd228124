package discord

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// Signature headers sent by Discord with every webhook request.
const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// ParsePublicKey decodes the hex public key Discord shows in the
// application settings.
func ParsePublicKey(hexKey string) (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("decode public key: got %d bytes, want %d", len(raw), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(raw), nil
}

// VerifySignature reports whether the request signature is valid for the
// given timestamp and raw body. The signed message is the timestamp
// immediately followed by the body.
func VerifySignature(publicKey ed25519.PublicKey, signatureHex, timestamp string, body []byte) bool {
	signature, err := hex.DecodeString(signatureHex)
	if err != nil || len(signature) != ed25519.SignatureSize {
		return false
	}
	message := make([]byte, 0, len(timestamp)+len(body))
	message = append(message, timestamp...)
	message = append(message, body...)
	return ed25519.Verify(publicKey, message, signature)
}
