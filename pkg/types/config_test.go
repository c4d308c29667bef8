// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0.0.0.0:8501", cfg.Server.Addr())
	assert.EqualValues(t, 200<<20, cfg.Server.MaxUploadBytes)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"no upload budget", func(c *Config) { c.Server.MaxUploadBytes = 0 }},
		{"no pixel budget", func(c *Config) { c.Server.MaxImagePixels = 0 }},
		{"unknown level", func(c *Config) { c.Log.Level = "verbose" }},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestServerConfig_AddrIPv6(t *testing.T) {
	assert.Equal(t, "[::1]:8080", ServerConfig{Host: "::1", Port: 8080}.Addr())
}
