// Package wizard implements the navigation state machine for the resume
// builder: a linear seven-step sequence plus an orthogonal section overlay for
// the certifications sub-flow.
package wizard

import (
	"fmt"

	"github.com/jonathan/resume-wizard/internal/document"
)

// Step identifies a position in the linear wizard sequence.
type Step int

// The seven wizard steps, in order.
const (
	StepPersonalInfo Step = iota + 1
	StepCareerSummary
	StepWorkExperience
	StepEducation
	StepContactInfo
	StepAIGeneration
	StepReview
)

// MinStep and MaxStep bound the linear sequence.
const (
	MinStep = StepPersonalInfo
	MaxStep = StepReview
)

// String returns the step's display title.
func (s Step) String() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Information"
	case StepCareerSummary:
		return "Career Summary"
	case StepWorkExperience:
		return "Skills & Experience"
	case StepEducation:
		return "Education & Certifications"
	case StepContactInfo:
		return "Contact Information"
	case StepAIGeneration:
		return "AI Resume Generation"
	case StepReview:
		return "Review & Download"
	default:
		return fmt.Sprintf("Step %d", int(s))
	}
}

// Section identifies the secondary navigation region. SectionCertifications
// replaces the step-indexed view entirely while active; SectionEducation means
// the linear sequence is in control.
type Section string

// Known sections.
const (
	SectionEducation      Section = "education"
	SectionCertifications Section = "certifications"
)

// Machine drives wizard navigation over the document store. The current step
// and section live in the document itself so navigation survives a reload.
type Machine struct {
	store *document.Store
}

// New creates a navigation machine over the given store.
func New(store *document.Store) *Machine {
	return &Machine{store: store}
}

// Current returns the active step and section.
func (m *Machine) Current() (Step, Section) {
	doc := m.store.Snapshot()
	return Step(doc.CurrentStep), Section(doc.CurrentSection)
}

// ActiveView names the view the UI should render: the certifications overlay
// when its section override is set, otherwise the step-indexed view.
func (m *Machine) ActiveView() string {
	step, section := m.Current()
	if section == SectionCertifications {
		return string(SectionCertifications)
	}
	return step.String()
}

// NavigateTo handles direct navigation from the step indicator. Any step at or
// below the current step plus one is accepted; anything further ahead is a
// silent no-op. It reports whether the navigation was applied.
func (m *Machine) NavigateTo(target Step) (bool, error) {
	if target < MinStep || target > MaxStep {
		return false, nil
	}
	current, _ := m.Current()
	if target > current+1 {
		return false, nil
	}
	if err := m.store.SetStep(int(target)); err != nil {
		return false, err
	}
	return true, nil
}

// Advance moves to the fixed next step for a completed form. Unlike NavigateTo
// it is not bounded by current progress; each form names its own successor.
func (m *Machine) Advance(to Step) error {
	if to < MinStep || to > MaxStep {
		return fmt.Errorf("step %d out of range", int(to))
	}
	return m.store.SetStep(int(to))
}

// OpenCertifications activates the certifications overlay. The linear step is
// left untouched so closing the overlay resumes where the wizard was.
func (m *Machine) OpenCertifications() error {
	return m.store.SetSection(string(SectionCertifications))
}

// CloseSection returns control to the linear sequence without moving it.
func (m *Machine) CloseSection() error {
	return m.store.SetSection(string(SectionEducation))
}
