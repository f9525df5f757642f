// Package enhance orchestrates AI enhancement of the resume document: it
// serializes the current snapshot, asks the language model for an improved
// version, validates the sparse response, and merges it back into the store.
package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/llm"
	"github.com/jonathan/resume-wizard/internal/prompts"
	"github.com/jonathan/resume-wizard/internal/types"
)

// ErrInFlight is returned when an enhancement request is started while a
// previous one has not settled yet.
var ErrInFlight = errors.New("an enhancement request is already in flight")

// Service runs enhancement requests against a language model client. At most
// one request may be in flight at a time.
type Service struct {
	client       llm.Client
	tickInterval time.Duration
	inFlight     atomic.Bool
}

func NewService(client llm.Client) *Service {
	return &Service{client: client, tickInterval: 300 * time.Millisecond}
}

// Enhance snapshots the document, requests an enhanced version from the
// model, and merges the validated response into the store. Progress updates
// are delivered through onProgress when it is non-nil. The returned bool
// reports whether a merge was applied on this run; callers must not infer it
// from the document's enhanced flag, which stays set from earlier runs.
//
// Transport and model errors are returned to the caller so the request can
// be retried. An unparsable response is not an error: the document is left
// untouched and the pre-request snapshot is returned.
func (s *Service) Enhance(ctx context.Context, store *document.Store, onProgress func(percent int)) (*types.ResumeDocument, bool, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, false, ErrInFlight
	}
	defer s.inFlight.Store(false)

	snapshot := store.Snapshot()
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, false, fmt.Errorf("failed to serialize document: %w", err)
	}

	prompt, err := prompts.Enhancement(string(payload))
	if err != nil {
		return nil, false, fmt.Errorf("failed to build enhancement prompt: %w", err)
	}

	var progress *ramp
	if onProgress != nil {
		progress = newRamp(s.tickInterval, onProgress)
		progress.start()
	}

	log.Printf("[ENHANCE] requesting enhancement for %q", snapshot.JobTitle)
	raw, err := s.client.GenerateJSON(ctx, prompt)
	if progress != nil {
		progress.finish(err == nil)
	}
	if err != nil {
		return nil, false, fmt.Errorf("enhancement request failed: %w", err)
	}

	enhanced, err := ParseResponse(raw)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			log.Printf("[ENHANCE] %v; keeping original document", perr)
			return snapshot, false, nil
		}
		return nil, false, err
	}

	if err := store.ApplyEnhanced(enhanced); err != nil {
		return nil, false, fmt.Errorf("failed to apply enhancement: %w", err)
	}
	return store.Snapshot(), true, nil
}
