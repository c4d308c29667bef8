// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// ServerConfig holds settings for the web front end.
type ServerConfig struct {
	// Host is the interface the listener binds to (e.g. "0.0.0.0").
	Host string `json:"host" yaml:"host" mapstructure:"host"`

	// Port is the TCP port the listener binds to (default 8501).
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"min=1,max=65535"`

	// MaxUploadBytes bounds the size of one multipart request body.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes" mapstructure:"max_upload_bytes" validate:"gt=0"`

	// MaxImagePixels bounds the declared width x height of an uploaded image.
	MaxImagePixels int64 `json:"max_image_pixels" yaml:"max_image_pixels" mapstructure:"max_image_pixels" validate:"gt=0"`

	// ReadTimeout is the maximum duration for reading a request, uploads included.
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout" validate:"gte=0"`

	// WriteTimeout is the maximum duration for processing and writing a response.
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout" validate:"gte=0"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LogConfig holds settings for the server logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=debug info warn warning error"`

	// Format selects text or json output.
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=text json"`
}

// Config groups every configurable setting of pdf-toolkit.
type Config struct {
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8501
	DefaultMaxUploadBytes = 200 << 20
	DefaultMaxImagePixels = 100_000_000
	DefaultReadTimeout    = 60 * time.Second
	DefaultWriteTimeout   = 120 * time.Second
)

// DefaultConfig returns the settings used when no config file, env var or
// flag overrides them.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:           DefaultHost,
			Port:           DefaultPort,
			MaxUploadBytes: DefaultMaxUploadBytes,
			MaxImagePixels: DefaultMaxImagePixels,
			ReadTimeout:    DefaultReadTimeout,
			WriteTimeout:   DefaultWriteTimeout,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the struct tags of c and returns the first violation.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
