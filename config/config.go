package config

import (
	"os"
	"strconv"
)

// Config holds service configuration loaded from environment variables.
type Config struct {
	Port          string
	RedisAddr     string
	RedisPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	// RestampPublishedAt controls whether approving an already-published
	// post bumps published_at to now. Off by default: published_at is set
	// exactly once, at first publication.
	RestampPublishedAt bool

	// PageViewRetentionDays is how long page views are kept before the
	// nightly purge removes them.
	PageViewRetentionDays int
}

func Load() *Config {
	return &Config{
		Port:                  getenv("PORT", "8080"),
		RedisAddr:             getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         getenv("REDIS_PASSWORD", ""),
		MinioEndpoint:         getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey:        getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:        getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:           getenv("MINIO_BUCKET", "blog-images"),
		MinioUseSSL:           getenv("MINIO_USE_SSL", "false") == "true",
		MinioPublicURL:        getenv("MINIO_PUBLIC_URL", ""),
		RestampPublishedAt:    getenv("RESTAMP_PUBLISHED_AT", "false") == "true",
		PageViewRetentionDays: getenvInt("PAGEVIEW_RETENTION_DAYS", 90),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
