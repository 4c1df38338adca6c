package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseJWTExpiration(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{"unset falls back to default", "", defaultJWTExpiration},
		{"valid duration", "72h", 72 * time.Hour},
		{"minutes work too", "30m", 30 * time.Minute},
		{"garbage falls back to default", "soon", defaultJWTExpiration},
		{"negative falls back to default", "-1h", defaultJWTExpiration},
		{"zero falls back to default", "0s", defaultJWTExpiration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseJWTExpiration(tt.raw))
		})
	}
}
