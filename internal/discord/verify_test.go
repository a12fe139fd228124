package discord

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"
)

func TestParsePublicKey(t *testing.T) {
	t.Parallel()

	public, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	parsed, err := ParsePublicKey(hex.EncodeToString(public))
	if err != nil {
		t.Fatalf("ParsePublicKey returned error: %v", err)
	}
	if !parsed.Equal(public) {
		t.Fatal("parsed key differs from original")
	}

	if _, err := ParsePublicKey("not hex"); err == nil {
		t.Fatal("expected error for non-hex input")
	}
	if _, err := ParsePublicKey(hex.EncodeToString(public[:16])); err == nil {
		t.Fatal("expected error for truncated key")
	}
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	timestamp := "1714000000"
	body := []byte(`{"type":1}`)
	signature := ed25519.Sign(private, []byte(timestamp+string(body)))
	signatureHex := hex.EncodeToString(signature)

	if !VerifySignature(public, signatureHex, timestamp, body) {
		t.Fatal("valid signature rejected")
	}
	if VerifySignature(public, signatureHex, "1714000001", body) {
		t.Fatal("signature accepted with altered timestamp")
	}
	if VerifySignature(public, signatureHex, timestamp, []byte(`{"type":2}`)) {
		t.Fatal("signature accepted with altered body")
	}
	if VerifySignature(public, "zz"+signatureHex[2:], timestamp, body) {
		t.Fatal("non-hex signature accepted")
	}
	if VerifySignature(public, strings.Repeat("00", 32), timestamp, body) {
		t.Fatal("short signature accepted")
	}
}
