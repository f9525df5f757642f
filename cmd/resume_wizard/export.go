package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/export"
	"github.com/jonathan/resume-wizard/internal/rendering"
)

var (
	exportConfigPath string
	exportStorePath  string
	exportOutput     string
	exportHTML       bool
	exportPages      bool
	exportVerbose    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume as a PDF",
	Long:  `Render the stored resume and print it to an A4 PDF. Requires Chrome/Chromium. Use --html to write the preview HTML instead, or --pages to write one PNG per A4 page.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	exportCmd.Flags().StringVar(&exportStorePath, "store", "", "Path to the persisted document file")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (defaults to Resume_<First>_<Last>.pdf in the current directory; a directory when used with --pages)")
	exportCmd.Flags().BoolVar(&exportHTML, "html", false, "Write the preview HTML instead of printing a PDF")
	exportCmd.Flags().BoolVar(&exportPages, "pages", false, "Write per-page PNG images instead of a PDF")
	exportCmd.Flags().BoolVarP(&exportVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, exportConfigPath, exportStorePath, "", "", 0)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	doc := store.Snapshot()

	if exportHTML {
		html, err := rendering.RenderHTML(doc)
		if err != nil {
			return err
		}
		out := exportOutput
		if out == "" {
			out = "resume.html"
		}
		if err := os.WriteFile(out, []byte(html), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Printf("Wrote %s\n", out)
		return nil
	}

	if exportPages {
		pages, err := export.CapturePages(context.Background(), doc, export.DefaultTimeout, exportVerbose || cfg.Verbose)
		if err != nil {
			return err
		}
		dir := exportOutput
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		for i, page := range pages {
			out := filepath.Join(dir, export.PageFileName(doc, i+1))
			if err := os.WriteFile(out, page, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Printf("Wrote %s (%d bytes)\n", out, len(page))
		}
		return nil
	}

	pdf, err := export.PDF(context.Background(), doc, export.DefaultTimeout, exportVerbose || cfg.Verbose)
	if err != nil {
		return err
	}

	out := exportOutput
	if out == "" {
		out = export.FileName(doc)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(out, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", out, len(pdf))
	return nil
}
