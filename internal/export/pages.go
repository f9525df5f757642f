package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-wizard/internal/rendering"
	"github.com/jonathan/resume-wizard/internal/types"
)

// CapturePages screenshots the rendered preview and slices it into
// A4-proportioned page images, encoded as PNG. The last page may be shorter
// than a full A4 page.
func CapturePages(ctx context.Context, doc *types.ResumeDocument, timeout time.Duration, verbose bool) ([][]byte, error) {
	var shot []byte
	if err := capturePreview(ctx, doc, timeout, &shot); err != nil {
		return nil, err
	}
	return encodeCaptured(ctx, shot, verbose)
}

// encodeCaptured slices a full-height screenshot into page images and encodes
// them as PNG.
func encodeCaptured(ctx context.Context, shot []byte, verbose bool) ([][]byte, error) {
	full, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}

	pages := slicePages(full)
	if verbose {
		log.Printf("[EXPORT] captured %d page image(s)", len(pages))
	}

	// Encode pages concurrently; PNG encoding dominates export time for
	// long resumes.
	encoded := make([][]byte, len(pages))
	g, _ := errgroup.WithContext(ctx)
	for i, pg := range pages {
		g.Go(func() error {
			var buf bytes.Buffer
			if err := png.Encode(&buf, pg); err != nil {
				return fmt.Errorf("failed to encode page %d: %w", i+1, err)
			}
			encoded[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return encoded, nil
}

func capturePreview(ctx context.Context, doc *types.ResumeDocument, timeout time.Duration, shot *[]byte) error {
	html, err := rendering.RenderHTML(doc)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	if err := runBrowser(ctx, timeout, html, chromedp.FullScreenshot(shot, 100)); err != nil {
		return fmt.Errorf("screenshot failed: %w", err)
	}
	return nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// slicePages cuts the full-height screenshot into A4-proportioned slices.
func slicePages(full image.Image) []image.Image {
	bounds := full.Bounds()
	pageHeight := int(float64(bounds.Dx()) * paperHeightInches / paperWidthInches)
	if pageHeight <= 0 || bounds.Dy() <= pageHeight {
		return []image.Image{full}
	}

	cropper, ok := full.(subImager)
	if !ok {
		return []image.Image{full}
	}

	var pages []image.Image
	for top := bounds.Min.Y; top < bounds.Max.Y; top += pageHeight {
		bottom := top + pageHeight
		if bottom > bounds.Max.Y {
			bottom = bounds.Max.Y
		}
		pages = append(pages, cropper.SubImage(image.Rect(bounds.Min.X, top, bounds.Max.X, bottom)))
	}
	return pages
}
