package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	resetConfigPath string
	resetStorePath  string
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the stored resume and start over",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().StringVar(&resetConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	resetCmd.Flags().StringVar(&resetStorePath, "store", "", "Path to the persisted document file")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, resetConfigPath, resetStorePath, "", "", 0)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if err := store.Reset(); err != nil {
		return err
	}

	fmt.Println("Resume reset to a blank document.")
	return nil
}
