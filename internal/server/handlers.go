package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/jonathan/resume-wizard/internal/export"
	"github.com/jonathan/resume-wizard/internal/forms"
	"github.com/jonathan/resume-wizard/internal/llm"
	"github.com/jonathan/resume-wizard/internal/rendering"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// handleGetDocument returns the current document snapshot.
func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handleReset restores the pristine document and clears persisted state.
func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	if err := s.store.Reset(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// stepResponse is the common reply for step submissions: the updated document
// plus where the wizard now stands.
func (s *Server) stepResponse(w http.ResponseWriter) {
	step, section := s.nav.Current()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"document":    s.store.Snapshot(),
		"currentStep": int(step),
		"section":     string(section),
	})
}

func (s *Server) handlePersonalInfo(w http.ResponseWriter, r *http.Request) {
	var form forms.PersonalForm
	if err := decodeBody(r, &form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Submit(s.store, s.nav); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.stepResponse(w)
}

func (s *Server) handleCareerSummary(w http.ResponseWriter, r *http.Request) {
	var form forms.CareerForm
	if err := decodeBody(r, &form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Submit(s.store, s.nav); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.stepResponse(w)
}

func (s *Server) handleWorkExperience(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Rows []forms.ExperienceRow `json:"rows"`
	}
	if err := decodeBody(r, &payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// API clients bypass the per-keystroke commit path, so the per-row
	// skill cap is enforced here instead.
	for i := range payload.Rows {
		if len(payload.Rows[i].Skills) > forms.MaxSkillsPerRow {
			payload.Rows[i].Skills = payload.Rows[i].Skills[:forms.MaxSkillsPerRow]
		}
	}

	form := forms.ExperienceForm{Rows: payload.Rows}
	if err := form.Submit(s.store, s.nav); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.stepResponse(w)
}

func (s *Server) handleEducation(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Rows []forms.EducationRow `json:"rows"`
		// OpenCertifications saves the rows and opens the certifications
		// overlay instead of advancing.
		OpenCertifications bool `json:"openCertifications"`
	}
	if err := decodeBody(r, &payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	form := forms.EducationForm{Rows: payload.Rows}
	var err error
	if payload.OpenCertifications {
		err = form.OpenCertifications(s.store, s.nav)
	} else {
		err = form.Submit(s.store, s.nav)
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.stepResponse(w)
}

func (s *Server) handleCertifications(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Rows []forms.CertificationRow `json:"rows"`
		// Back saves the rows and returns to the education view without
		// advancing the wizard.
		Back bool `json:"back"`
	}
	if err := decodeBody(r, &payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	form := forms.CertificationsForm{Rows: payload.Rows}
	var err error
	if payload.Back {
		err = form.BackToEducation(s.store, s.nav)
	} else {
		err = form.Submit(s.store, s.nav)
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.stepResponse(w)
}

func (s *Server) handleContactInfo(w http.ResponseWriter, r *http.Request) {
	var form forms.ContactForm
	if err := decodeBody(r, &form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Submit(s.store, s.nav); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.stepResponse(w)
}

// handleWizardState reports the current step, its title, and the active view.
func (s *Server) handleWizardState(w http.ResponseWriter, _ *http.Request) {
	step, section := s.nav.Current()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"currentStep": int(step),
		"title":       step.String(),
		"section":     string(section),
		"activeView":  s.nav.ActiveView(),
	})
}

// handleNavigate handles direct navigation from the step indicator. Forward
// jumps beyond the next step are reported as not applied, never as errors.
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Step int `json:"step"`
	}
	if err := decodeBody(r, &payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	applied, err := s.nav.NavigateTo(wizard.Step(payload.Step))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	step, section := s.nav.Current()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applied":     applied,
		"currentStep": int(step),
		"section":     string(section),
	})
}

// handleSection opens or closes the certifications overlay.
func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Section string `json:"section"`
	}
	if err := decodeBody(r, &payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var err error
	switch wizard.Section(payload.Section) {
	case wizard.SectionCertifications:
		err = s.nav.OpenCertifications()
	case wizard.SectionEducation:
		err = s.nav.CloseSection()
	default:
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown section %q", payload.Section))
		return
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.stepResponse(w)
}

// handleEnhance runs a synchronous enhancement and returns the merged
// document.
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	if s.enhancer == nil {
		s.errorResponse(w, HTTPStatus(llm.ErrMissingAPIKey), llm.ErrMissingAPIKey.Error())
		return
	}

	doc, merged, err := s.enhancer.Enhance(r.Context(), s.store, nil)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"document":     doc,
		"merged":       merged,
		"isAIEnhanced": doc.IsAIEnhanced,
	})
}

// handleEnhanceStream runs an enhancement with progress streamed over SSE.
func (s *Server) handleEnhanceStream(w http.ResponseWriter, r *http.Request) {
	if s.enhancer == nil {
		s.errorResponse(w, HTTPStatus(llm.ErrMissingAPIKey), llm.ErrMissingAPIKey.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Progress callbacks arrive from the ramp goroutine while the handler
	// waits on the model call.
	var mu sync.Mutex
	doc, _, err := s.enhancer.Enhance(r.Context(), s.store, func(percent int) {
		mu.Lock()
		defer mu.Unlock()
		sse.WriteProgress(percent)
	})
	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteComplete(doc)
}

// handlePreview renders the resume preview as HTML.
func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	html, err := rendering.RenderHTML(s.store.Snapshot())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html)) //nolint:errcheck
}

// handleExport prints the preview to a PDF download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Snapshot()
	pdf, err := export.PDF(r.Context(), doc, export.DefaultTimeout, s.verbose)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(doc)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf) //nolint:errcheck
}
