package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/observability"
)

var (
	showConfigPath string
	showStorePath  string
	showJSON       bool
	showExperience bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored resume document",
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	showCmd.Flags().StringVar(&showStorePath, "store", "", "Path to the persisted document file")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the raw document JSON")
	showCmd.Flags().BoolVar(&showExperience, "experience", false, "Also print the work history entries")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, showConfigPath, showStorePath, "", "", 0)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	doc := store.Snapshot()

	if showJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintDocument(doc)
	if showExperience {
		printer.PrintExperience(doc.WorkExperience)
	}
	return nil
}
