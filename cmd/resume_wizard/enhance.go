package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/enhance"
	"github.com/jonathan/resume-wizard/internal/llm"
	"github.com/jonathan/resume-wizard/internal/observability"
	"github.com/jonathan/resume-wizard/internal/types"
)

var (
	enhanceConfigPath string
	enhanceStorePath  string
	enhanceAPIKey     string
	enhanceModel      string
	enhanceVerbose    bool
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Enhance the stored resume with AI",
	Long:  `Send the current document to Gemini for enhancement and merge the improved fields back into the stored resume.`,
	RunE:  runEnhance,
}

func init() {
	enhanceCmd.Flags().StringVar(&enhanceConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	enhanceCmd.Flags().StringVar(&enhanceStorePath, "store", "", "Path to the persisted document file")
	enhanceCmd.Flags().StringVar(&enhanceAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	enhanceCmd.Flags().StringVar(&enhanceModel, "model", "", "Gemini model name")
	enhanceCmd.Flags().BoolVarP(&enhanceVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd, enhanceConfigPath, enhanceStorePath, enhanceAPIKey, enhanceModel, 0)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	client, err := llm.NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	fmt.Println("Enhancing resume...")
	doc, merged, err := enhance.NewService(client).Enhance(ctx, store, func(percent int) {
		fmt.Printf("\rProgress: %d%%", percent)
	})
	fmt.Println()
	if err != nil {
		return err
	}

	if !merged {
		fmt.Println("The model response could not be used; the resume is unchanged.")
		return nil
	}

	fmt.Println("Resume enhanced.")
	if enhanceVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintDocument(doc)
		var enh types.EnhancedResume
		if err := json.Unmarshal([]byte(doc.GeneratedResume), &enh); err == nil {
			printer.PrintEnhancementDiff(&enh)
		}
	}
	return nil
}
