package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/storage"
)

// resolveConfig layers configuration: environment variables first, then the
// optional config file, then explicitly set CLI flags.
func resolveConfig(cmd *cobra.Command, configPath, storePath, apiKey, model string, port int) (config.Config, error) {
	cfg := config.FromEnv()

	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded.MergeWithDefaults(cfg)
	}

	if cmd.Flags().Changed("store") {
		cfg.StorePath = storePath
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = model
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore opens the persisted document under the configured path, falling
// back to the per-user default location.
func openStore(cfg config.Config) (*document.Store, error) {
	path := cfg.StorePath
	if path == "" {
		var err error
		path, err = storage.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	gateway, err := storage.NewFileStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}
	return document.NewStore(gateway), nil
}
