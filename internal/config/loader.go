package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the signup
// service.
type Config struct {
	HTTPPort         int
	SQLiteDSN        string
	DiscordPublicKey string
	DiscordBotToken  string
	DiscordAPIBase   string
	LookupTimeout    time.Duration
}

// Load reads configuration from the process environment, after loading a
// .env file when one exists in the working directory.
//
// Optional fields fall back to defaults; required values and unparseable
// entries are reported together so a misconfigured deployment fails with
// the full list at once.
func Load() (Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:       8080,
		SQLiteDSN:      "file:signupd.db?_pragma=foreign_keys(1)",
		DiscordAPIBase: "https://discord.com/api/v10",
		LookupTimeout:  5 * time.Second,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SIGNUPD_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SIGNUPD_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SIGNUPD_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	publicKey := strings.TrimSpace(os.Getenv("SIGNUPD_DISCORD_PUBLIC_KEY"))
	switch {
	case publicKey == "":
		missing = append(missing, "SIGNUPD_DISCORD_PUBLIC_KEY")
	case !isHexKey(publicKey):
		invalid = append(invalid, "SIGNUPD_DISCORD_PUBLIC_KEY")
	default:
		cfg.DiscordPublicKey = publicKey
	}

	cfg.DiscordBotToken = strings.TrimSpace(os.Getenv("SIGNUPD_DISCORD_BOT_TOKEN"))

	if base := strings.TrimSpace(os.Getenv("SIGNUPD_DISCORD_API_BASE")); base != "" {
		cfg.DiscordAPIBase = base
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("SIGNUPD_LOOKUP_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "SIGNUPD_LOOKUP_TIMEOUT")
		} else {
			cfg.LookupTimeout = timeout
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables have invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// isHexKey checks the shape of an ed25519 public key: 32 bytes hex encoded.
func isHexKey(value string) bool {
	raw, err := hex.DecodeString(value)
	return err == nil && len(raw) == 32
}
