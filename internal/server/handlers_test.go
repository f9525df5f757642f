package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/storage"
	"github.com/jonathan/resume-wizard/internal/types"
)

type stubClient struct {
	response string
	err      error
}

func (c *stubClient) GenerateJSON(_ context.Context, _ string) (string, error) {
	return c.response, c.err
}

func (c *stubClient) Close() error { return nil }

func newTestServer(t *testing.T, client *stubClient) *Server {
	t.Helper()
	gateway, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	store := document.NewStore(gateway)

	cfg := Config{Port: 0}
	if client != nil {
		return newServer(cfg, store, client)
	}
	return newServer(cfg, store, nil)
}

func (s *Server) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestGetDocumentReturnsDefaults(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/document", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc types.ResumeDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, 1, doc.CurrentStep)
	assert.Equal(t, "education", doc.CurrentSection)
}

func TestPersonalInfoSubmitAdvances(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/steps/personal-info", map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		CurrentStep int                  `json:"currentStep"`
		Document    types.ResumeDocument `json:"document"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.CurrentStep)
	assert.Equal(t, "Ada", resp.Document.PersonalInfo.FirstName)
}

func TestWorkExperienceSubmitAggregatesSkills(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/steps/work-experience", map[string]any{
		"rows": []map[string]any{
			{
				"jobTitle": "Engineer",
				"company":  "Acme",
				"skills":   []string{"Go", "SQL"},
			},
			{
				"jobTitle": "Developer",
				"company":  "Initech",
				"skills":   []string{"SQL", "Rust"},
			},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		CurrentStep int                  `json:"currentStep"`
		Document    types.ResumeDocument `json:"document"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.CurrentStep)
	assert.Equal(t, []string{"Go", "SQL", "Rust"}, resp.Document.Skills)
	assert.Equal(t, "Engineer", resp.Document.WorkExperience[0].Position)
}

func TestWorkExperienceSkillCapEnforced(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/steps/work-experience", map[string]any{
		"rows": []map[string]any{
			{
				"jobTitle": "Engineer",
				"company":  "Acme",
				"skills":   []string{"a", "b", "c", "d", "e", "f", "g"},
			},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Document types.ResumeDocument `json:"document"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Document.WorkExperience[0].Skills, 5)
}

func TestContactInfoValidation(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/steps/contact-info", map[string]string{
		"linkedin": "not a url",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "LinkedIn")

	rec = s.do(t, http.MethodPost, "/steps/contact-info", map[string]string{
		"email":    "ada@example.com",
		"linkedin": "https://linkedin.com/in/ada",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		CurrentStep int                  `json:"currentStep"`
		Document    types.ResumeDocument `json:"document"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.CurrentStep)
	// LinkedIn mirrors into the personal info.
	assert.Equal(t, "https://linkedin.com/in/ada", resp.Document.PersonalInfo.LinkedIn)
}

func TestNavigateForwardJumpIsSilentNoOp(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/wizard/navigate", map[string]int{"step": 5})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Applied     bool `json:"applied"`
		CurrentStep int  `json:"currentStep"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Applied)
	assert.Equal(t, 1, resp.CurrentStep)

	// One step ahead is allowed.
	rec = s.do(t, http.MethodPost, "/wizard/navigate", map[string]int{"step": 2})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Applied)
	assert.Equal(t, 2, resp.CurrentStep)
}

func TestSectionOverlayRoundTrip(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/wizard/section", map[string]string{"section": "certifications"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/wizard", nil)
	var state struct {
		ActiveView string `json:"activeView"`
		Section    string `json:"section"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "certifications", state.ActiveView)

	rec = s.do(t, http.MethodPost, "/wizard/section", map[string]string{"section": "education"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/wizard", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "education", state.Section)
	assert.NotEqual(t, "certifications", state.ActiveView)
}

func TestSectionUnknownRejected(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/wizard/section", map[string]string{"section": "hobbies"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnhanceWithoutClientUnavailable(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/enhance", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestEnhanceMergesResponse(t *testing.T) {
	s := newTestServer(t, &stubClient{response: "```json\n{\"jobTitle\": \"Senior Engineer\"}\n```"})

	rec := s.do(t, http.MethodPost, "/enhance", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Merged       bool                 `json:"merged"`
		IsAIEnhanced bool                 `json:"isAIEnhanced"`
		Document     types.ResumeDocument `json:"document"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Merged)
	assert.True(t, resp.IsAIEnhanced)
	assert.Equal(t, "Senior Engineer", resp.Document.JobTitle)
}

func TestEnhanceUnusableResponseReportsNoMerge(t *testing.T) {
	client := &stubClient{response: `{"jobTitle": "Senior Engineer"}`}
	s := newTestServer(t, client)

	rec := s.do(t, http.MethodPost, "/enhance", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The second run fails to parse; the document keeps its enhanced flag
	// from the first run but no merge happened this time.
	client.response = "no JSON here"
	rec = s.do(t, http.MethodPost, "/enhance", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Merged       bool                 `json:"merged"`
		IsAIEnhanced bool                 `json:"isAIEnhanced"`
		Document     types.ResumeDocument `json:"document"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Merged)
	assert.True(t, resp.IsAIEnhanced)
	assert.Equal(t, "Senior Engineer", resp.Document.JobTitle)
}

func TestEnhanceStreamEmitsCompletion(t *testing.T) {
	s := newTestServer(t, &stubClient{response: `{"jobTitle": "Lead Engineer"}`})

	rec := s.do(t, http.MethodPost, "/enhance/stream", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: complete")
	assert.Contains(t, body, "Lead Engineer")
}

func TestResetRestoresDefaults(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/steps/personal-info", map[string]string{"firstName": "Ada"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc types.ResumeDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, 1, doc.CurrentStep)
	assert.Empty(t, doc.PersonalInfo.FirstName)
}

func TestPreviewRendersHTML(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/preview", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "YOUR NAME")
}
