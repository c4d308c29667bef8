// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the server's logrus logger from configuration.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// ParseLevel maps a configured level name to a logrus level. Unknown or
// empty names fall back to info.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// New returns a logger writing to w at the configured level and format.
func New(cfg types.LogConfig, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(ParseLevel(cfg.Level))
	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return logger
}
