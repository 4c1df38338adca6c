package config

import (
	"os"
	"time"
)

var JWTSecret []byte
var JWTExpiration time.Duration

const defaultJWTExpiration = 24 * time.Hour

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "assunnah-blog-dev-only-secret"
	}
	JWTSecret = []byte(secret)
	JWTExpiration = parseJWTExpiration(os.Getenv("JWT_EXPIRATION"))
}

// parseJWTExpiration reads a time.Duration string such as "72h".
// Unparseable or non-positive values fall back to the default.
func parseJWTExpiration(raw string) time.Duration {
	if raw == "" {
		return defaultJWTExpiration
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return defaultJWTExpiration
	}
	return d
}
