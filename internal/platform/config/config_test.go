// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasknest/internal/platform/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

/*
TestParse_Defaults verifies that optional settings fall back to their defaults.
*/
func TestParse_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tasknest")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, config.RevocationBackendRedis, cfg.RevocationBackend)
	assert.Equal(t, "tasknest.app", cfg.JWTIssuer)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.EventsEnabled)
	assert.Empty(t, cfg.MigrationPath)
	assert.Equal(t, int32(20), cfg.DatabaseMaxConns)
}

/*
TestParse_Origins checks that the CORS allow-list is split on commas.
*/
func TestParse_Origins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tasknest")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("REVOCATION_BACKEND", "memory")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}

/*
TestValidate covers the cross-field rules enforced after parsing.
*/
func TestValidate(t *testing.T) {
	base := func() config.Config {
		return config.Config{
			JWTSecret:         testSecret,
			RefreshTokenTTL:   time.Hour,
			RevocationBackend: config.RevocationBackendMemory,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"valid_memory", func(*config.Config) {}, ""},
		{"short_secret", func(c *config.Config) { c.JWTSecret = "short" }, "JWT_SECRET"},
		{"zero_refresh_ttl", func(c *config.Config) { c.RefreshTokenTTL = 0 }, "REFRESH_TOKEN_TTL"},
		{"unknown_backend", func(c *config.Config) { c.RevocationBackend = "file" }, "unknown REVOCATION_BACKEND"},
		{"redis_without_url", func(c *config.Config) { c.RevocationBackend = config.RevocationBackendRedis }, "REDIS_URL"},
		{"badger", func(c *config.Config) { c.RevocationBackend = config.RevocationBackendBadger }, ""},
		{"min_over_max", func(c *config.Config) { c.DatabaseMaxConns, c.DatabaseMinConns = 4, 8 }, "DATABASE_MIN_CONNS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
		})
	}
}
