// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-toolkit/internal/logging"
	"github.com/pdiddy/pdf-toolkit/internal/server"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser front end",
	Long: `Serve starts the web front end: one page with a form per operation and
a multipart API under /api/. Results are returned as downloads; nothing is
kept on the server between requests.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "interface to bind (default 0.0.0.0)")
	serveCmd.Flags().Int("port", 0, "port to listen on (default 8501)")
	serveCmd.Flags().String("log-level", "", "log level: debug, info, warn, error")

	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("log.level", serveCmd.Flags().Lookup("log-level"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log, os.Stderr)
	srv, err := server.New(cfg.Server, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}
