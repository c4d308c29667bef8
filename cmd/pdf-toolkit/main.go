// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-toolkit CLI. Each document
// operation is a subcommand over local files; serve starts the web front end.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdf-toolkit CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf-toolkit",
	Short: "Merge, split, convert and rotate PDF documents",
	Long: `pdf-toolkit manipulates PDF and image files: merge documents with a
generated table of contents, split a PDF by page ranges, convert PNG and
JPEG images to letter-size pages, and rotate every page of a PDF.

Each operation is a subcommand over local files. The serve subcommand
exposes the same operations through a browser front end.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-toolkit.yaml or ~/.config/pdf-toolkit/pdf-toolkit.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-toolkit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-toolkit"))
		}
	}

	def := types.DefaultConfig()
	viper.SetDefault("server.host", def.Server.Host)
	viper.SetDefault("server.port", def.Server.Port)
	viper.SetDefault("server.max_upload_bytes", def.Server.MaxUploadBytes)
	viper.SetDefault("server.max_image_pixels", def.Server.MaxImagePixels)
	viper.SetDefault("server.read_timeout", def.Server.ReadTimeout)
	viper.SetDefault("server.write_timeout", def.Server.WriteTimeout)
	viper.SetDefault("log.level", def.Log.Level)
	viper.SetDefault("log.format", def.Log.Format)

	// PDF_TOOLKIT_SERVER_PORT overrides server.port.
	viper.SetEnvPrefix("PDF_TOOLKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration from defaults, the config
// file, the environment and bound flags, then validates it.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
