package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/server"
)

var (
	serveConfigPath string
	serveStorePath  string
	serveAPIKey     string
	serveModel      string
	servePort       int
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wizard HTTP server",
	Long:  `Start an HTTP server exposing the wizard steps, AI enhancement, preview, and PDF export as REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().StringVar(&serveStorePath, "store", "", "Path to the persisted document file (defaults to the per-user config dir)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Gemini model name")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, serveConfigPath, serveStorePath, serveAPIKey, serveModel, servePort)
	if err != nil {
		return err
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		StorePath: cfg.StorePath,
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		Verbose:   serveVerbose || cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
