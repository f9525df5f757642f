// Package export rasterizes the rendered resume preview into downloadable
// artifacts. It drives a headless browser, so Chrome/Chromium must be
// installed on the system.
package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-wizard/internal/rendering"
	"github.com/jonathan/resume-wizard/internal/types"
)

// A4 paper dimensions in inches, used for both PDF printing and page
// slicing.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
)

// DefaultTimeout bounds a single export run.
const DefaultTimeout = 30 * time.Second

// FileName derives the download file name from the user's name, falling back
// to a generic name when the personal-info step has not been filled in.
func FileName(doc *types.ResumeDocument) string {
	first := doc.PersonalInfo.FirstName
	last := doc.PersonalInfo.LastName
	if first == "" && last == "" {
		return "Resume.pdf"
	}
	return fmt.Sprintf("Resume_%s_%s.pdf", first, last)
}

// PageFileName derives the download file name for one captured page image.
// Pages are numbered from 1.
func PageFileName(doc *types.ResumeDocument, page int) string {
	return fmt.Sprintf("%s_page%d.png", strings.TrimSuffix(FileName(doc), ".pdf"), page)
}

// PDF renders the document's preview and prints it to an A4 PDF. The whole
// run is bounded by timeout; zero means DefaultTimeout.
func PDF(ctx context.Context, doc *types.ResumeDocument, timeout time.Duration, verbose bool) ([]byte, error) {
	html, err := rendering.RenderHTML(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}

	if verbose {
		log.Printf("[EXPORT] printing %d bytes of preview HTML to PDF", len(html))
	}

	var pdf []byte
	err = runBrowser(ctx, timeout, html,
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf export failed: %w", err)
	}

	if verbose {
		log.Printf("[EXPORT] produced PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}

// runBrowser loads the given HTML in a headless browser and runs the trailing
// actions against the rendered page.
func runBrowser(ctx context.Context, timeout time.Duration, html string, actions ...chromedp.Action) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
	all := append([]chromedp.Action{
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
	}, actions...)

	return chromedp.Run(browserCtx, all...)
}
