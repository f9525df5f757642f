package enhance

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/storage"
)

// fakeClient returns a canned response, optionally after blocking until
// released.
type fakeClient struct {
	response string
	err      error
	release  chan struct{}
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func newStore(t *testing.T) *document.Store {
	t.Helper()
	gateway, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return document.NewStore(gateway)
}

func TestEnhanceMergesFencedResponse(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetJobTitle("Engineer"))
	require.NoError(t, store.SetCareerSummary("Writes software."))
	before := store.Snapshot()

	client := &fakeClient{response: "```json\n{\"jobTitle\": \"Senior Engineer\"}\n```"}
	svc := NewService(client)

	result, merged, err := svc.Enhance(context.Background(), store, nil)
	require.NoError(t, err)
	assert.True(t, merged)

	assert.Equal(t, "Senior Engineer", result.JobTitle)
	assert.Equal(t, before.CareerSummary, result.CareerSummary)
	assert.Equal(t, before.PersonalInfo, result.PersonalInfo)
	assert.True(t, result.IsAIEnhanced)
	assert.NotEmpty(t, result.GeneratedResume)
}

func TestEnhanceUnparsableResponseKeepsDocument(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetJobTitle("Engineer"))
	before := store.Snapshot()

	client := &fakeClient{response: "I'm sorry, I can't produce JSON for that."}
	svc := NewService(client)

	result, merged, err := svc.Enhance(context.Background(), store, nil)
	require.NoError(t, err)
	assert.False(t, merged)

	assert.Equal(t, before, result)
	assert.Equal(t, before, store.Snapshot())
	assert.False(t, result.IsAIEnhanced)
}

func TestEnhanceUnparsableAfterPriorMergeReportsNoMerge(t *testing.T) {
	store := newStore(t)
	svc := NewService(&fakeClient{response: `{"jobTitle": "Senior Engineer"}`})
	_, merged, err := svc.Enhance(context.Background(), store, nil)
	require.NoError(t, err)
	require.True(t, merged)
	before := store.Snapshot()

	// A later failed run on an already-enhanced document must not report a
	// merge: the document's enhanced flag is still set from the first run.
	svc = NewService(&fakeClient{response: "no JSON here"})
	result, merged, err := svc.Enhance(context.Background(), store, nil)
	require.NoError(t, err)
	assert.False(t, merged)
	assert.True(t, result.IsAIEnhanced)
	assert.Equal(t, before, result)
	assert.Equal(t, before, store.Snapshot())
}

func TestEnhanceTransportErrorSurfaces(t *testing.T) {
	store := newStore(t)
	before := store.Snapshot()

	client := &fakeClient{err: errors.New("connection reset")}
	svc := NewService(client)

	_, _, err := svc.Enhance(context.Background(), store, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "enhancement request failed")
	assert.Equal(t, before, store.Snapshot())
}

func TestEnhanceRejectsConcurrentRequests(t *testing.T) {
	store := newStore(t)
	release := make(chan struct{})
	client := &fakeClient{response: "{}", release: release}
	svc := NewService(client)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		svc.Enhance(context.Background(), store, nil)
	}()

	// Wait for the first request to claim the slot.
	require.Eventually(t, func() bool {
		return svc.inFlight.Load()
	}, time.Second, 5*time.Millisecond)

	_, _, err := svc.Enhance(context.Background(), store, nil)
	assert.ErrorIs(t, err, ErrInFlight)

	close(release)
	wg.Wait()

	// The slot is free again once the first request settles.
	_, _, err = svc.Enhance(context.Background(), store, nil)
	assert.NoError(t, err)
}

func TestEnhanceProgressSnapsToCompletion(t *testing.T) {
	store := newStore(t)
	client := &fakeClient{response: "{\"jobTitle\": \"Lead Engineer\"}"}
	svc := NewService(client)
	svc.tickInterval = time.Millisecond

	var mu sync.Mutex
	var updates []int
	_, _, err := svc.Enhance(context.Background(), store, func(percent int) {
		mu.Lock()
		updates = append(updates, percent)
		mu.Unlock()
	})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, updates)
	assert.Equal(t, 100, updates[len(updates)-1])
	for _, percent := range updates[:len(updates)-1] {
		assert.LessOrEqual(t, percent, rampCeiling)
	}
}
