// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server implements the web front end: one HTML page with a form
// per operation and a multipart API that returns the produced files as
// downloads.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/imaging"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

//go:embed templates/index.html
var templateFS embed.FS

// multipartMemory is how much of a multipart body is held in memory before
// file parts spill to temporary files.
const multipartMemory = 32 << 20

// Server manages the HTTP listener and routes.
type Server struct {
	cfg    types.ServerConfig
	logger *logrus.Logger
	page   *template.Template
	router *http.ServeMux
	server *http.Server
}

// New creates a server for cfg. Requests are logged through logger. The
// image pixel limit applies process-wide.
func New(cfg types.ServerConfig, logger *logrus.Logger) (*Server, error) {
	imaging.SetMaxPixels(cfg.MaxImagePixels)

	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		page:   page,
	}
	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.withMiddleware(s.router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.server.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.WithField("address", ln.Addr().String()).Info("HTTP server starting")
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
