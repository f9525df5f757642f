// Package document owns the canonical resume document for a wizard session.
// All mutation goes through the Store's named update operations; every update
// is written through to the persistence gateway before it returns.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/jonathan/resume-wizard/internal/storage"
	"github.com/jonathan/resume-wizard/internal/types"
)

// Store holds the single ResumeDocument for the session. There is exactly one
// logical writer, but the HTTP surface may touch it from multiple goroutines,
// so updates are serialized with a mutex.
type Store struct {
	mu      sync.Mutex
	doc     *types.ResumeDocument
	gateway storage.Gateway
}

// NewStore rehydrates the document from the gateway. Missing or unreadable
// persisted state is treated as no prior state and falls back to the default
// document.
func NewStore(gateway storage.Gateway) *Store {
	doc, err := gateway.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[STORE] discarding unreadable persisted state: %v", err)
		}
		doc = DefaultDocument()
	}
	return &Store{doc: doc, gateway: gateway}
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() *types.ResumeDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// persist writes the current document through to the gateway. Callers hold the
// mutex.
func (s *Store) persist() error {
	if err := s.gateway.Save(s.doc); err != nil {
		return fmt.Errorf("failed to persist document: %w", err)
	}
	return nil
}

// SetStep records the active wizard step.
func (s *Store) SetStep(step int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.CurrentStep = step
	return s.persist()
}

// SetSection records the active section override.
func (s *Store) SetSection(section string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.CurrentSection = section
	return s.persist()
}

// UpdatePersonalInfo shallow-merges the provided keys into the document's
// personal info, leaving absent keys untouched.
func (s *Store) UpdatePersonalInfo(patch map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	applyPersonalPatch(&s.doc.PersonalInfo, patch)
	return s.persist()
}

// ReplacePersonalInfo replaces the personal info wholesale. Used by the
// personal-info step, whose submission is all-or-nothing.
func (s *Store) ReplacePersonalInfo(info types.PersonalInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.PersonalInfo = info
	return s.persist()
}

// SetJobTitle sets the target job title.
func (s *Store) SetJobTitle(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.JobTitle = title
	return s.persist()
}

// SetCareerSummary sets the career summary text.
func (s *Store) SetCareerSummary(summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.CareerSummary = summary
	return s.persist()
}

// SetSkills replaces the derived top-level skill list.
func (s *Store) SetSkills(skills []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Skills = append([]string(nil), skills...)
	return s.persist()
}

// ReplaceWorkExperience replaces the work experience slice wholesale.
func (s *Store) ReplaceWorkExperience(items []types.WorkExperienceItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.WorkExperience = items
	return s.persist()
}

// ReplaceEducation replaces the education slice wholesale.
func (s *Store) ReplaceEducation(items []types.EducationItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Education = items
	return s.persist()
}

// ReplaceCertifications replaces the certifications slice wholesale.
func (s *Store) ReplaceCertifications(items []types.CertificationItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Certifications = items
	return s.persist()
}

// UpdateContactInfo replaces the secondary contact bag.
func (s *Store) UpdateContactInfo(info types.ContactInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.ContactInfo = info
	return s.persist()
}

// ApplyEnhanced folds a validated enhancement partial into the document.
// Fields absent from the partial are left untouched; personalInfo is merged
// key by key. The serialized partial is retained in GeneratedResume and the
// document is flagged as AI-enhanced.
func (s *Store) ApplyEnhanced(enh *types.EnhancedResume) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(enh.PersonalInfo) > 0 {
		applyPersonalPatch(&s.doc.PersonalInfo, enh.PersonalInfo)
	}
	if enh.JobTitle != nil {
		s.doc.JobTitle = *enh.JobTitle
	}
	if enh.CareerSummary != nil {
		s.doc.CareerSummary = *enh.CareerSummary
	}
	if enh.Skills != nil {
		s.doc.Skills = enh.Skills
	}
	if enh.WorkExperience != nil {
		s.doc.WorkExperience = enh.WorkExperience
	}
	if enh.Education != nil {
		s.doc.Education = enh.Education
	}
	if enh.Certifications != nil {
		s.doc.Certifications = enh.Certifications
	}

	payload, err := json.Marshal(enh)
	if err != nil {
		return fmt.Errorf("failed to serialize enhanced payload: %w", err)
	}
	s.doc.GeneratedResume = string(payload)
	s.doc.IsAIEnhanced = true

	return s.persist()
}

// Reset restores the default document and persists it.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = DefaultDocument()
	if err := s.gateway.Clear(); err != nil {
		return err
	}
	return s.persist()
}

// applyPersonalPatch merges recognized personal-info keys into dst. Unknown
// keys are ignored.
func applyPersonalPatch(dst *types.PersonalInfo, patch map[string]string) {
	for key, value := range patch {
		switch key {
		case "firstName":
			dst.FirstName = value
		case "lastName":
			dst.LastName = value
		case "phone":
			dst.Phone = value
		case "email":
			dst.Email = value
		case "country":
			dst.Country = value
		case "city":
			dst.City = value
		case "address":
			dst.Address = value
		case "state":
			dst.State = value
		case "zipCode":
			dst.ZipCode = value
		case "portfolio":
			dst.Portfolio = value
		case "linkedin":
			dst.LinkedIn = value
		}
	}
}
