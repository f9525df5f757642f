package forms

import (
	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// CareerForm is the career-summary step adapter: the target job title and the
// summary paragraph.
type CareerForm struct {
	JobTitle string `json:"jobTitle"`
	Summary  string `json:"summary"`
}

// NewCareerForm loads the persisted job title and summary for editing.
func NewCareerForm(doc *types.ResumeDocument) *CareerForm {
	return &CareerForm{JobTitle: doc.JobTitle, Summary: doc.CareerSummary}
}

// Submit writes both fields back and advances to the work-experience step.
func (f *CareerForm) Submit(store *document.Store, nav *wizard.Machine) error {
	if err := store.SetJobTitle(f.JobTitle); err != nil {
		return err
	}
	if err := store.SetCareerSummary(f.Summary); err != nil {
		return err
	}
	return nav.Advance(wizard.StepWorkExperience)
}
