package forms

import (
	"time"

	"github.com/jonathan/resume-wizard/internal/dates"
	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// EducationRow is the editing shape for one education entry.
type EducationRow struct {
	Degree       string     `json:"degree"`
	Institution  string     `json:"institution"`
	Major        string     `json:"major"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Achievements []string   `json:"achievements"`
}

// EducationForm is the education step adapter.
type EducationForm struct {
	Rows  []EducationRow
	Files []AchievementFile
}

// NewEducationForm loads the persisted education slice. This path accepts both
// the canonical slash form and dash-separated dates, since enhanced documents
// have historically carried either. An empty slice seeds one blank row.
func NewEducationForm(doc *types.ResumeDocument) *EducationForm {
	form := &EducationForm{}
	for _, edu := range doc.Education {
		form.Rows = append(form.Rows, EducationRow{
			Degree:       edu.Degree,
			Institution:  edu.Institution,
			Major:        edu.Major,
			StartDate:    dates.ParseFlexible(edu.StartDate),
			EndDate:      dates.ParseFlexible(edu.EndDate),
			Achievements: append([]string(nil), edu.Achievements...),
		})
	}
	if len(form.Rows) == 0 {
		form.Rows = []EducationRow{{}}
	}
	return form
}

// AddRow appends a blank education row.
func (f *EducationForm) AddRow() {
	f.Rows = append(f.Rows, EducationRow{})
}

// RemoveRow deletes a row by index, keeping at least one row.
func (f *EducationForm) RemoveRow(i int) bool {
	if len(f.Rows) <= 1 || i < 0 || i >= len(f.Rows) {
		return false
	}
	f.Rows = append(f.Rows[:i], f.Rows[i+1:]...)
	return true
}

// AttachFiles records uploads and mirrors their names into the given row's
// achievements.
func (f *EducationForm) AttachFiles(row int, files ...AchievementFile) {
	if row < 0 || row >= len(f.Rows) {
		return
	}
	for _, file := range files {
		f.Files = append(f.Files, file)
		f.Rows[row].Achievements = append(f.Rows[row].Achievements, file.Name)
	}
}

// RemoveFile drops an upload and its mirrored achievement name.
func (f *EducationForm) RemoveFile(i int) {
	if i < 0 || i >= len(f.Files) {
		return
	}
	name := f.Files[i].Name
	f.Files = append(f.Files[:i], f.Files[i+1:]...)
	for r := range f.Rows {
		f.Rows[r].Achievements = removeString(f.Rows[r].Achievements, name)
	}
}

// encode converts the rows back to canonical form.
func (f *EducationForm) encode() []types.EducationItem {
	items := make([]types.EducationItem, len(f.Rows))
	for i, row := range f.Rows {
		items[i] = types.EducationItem{
			Degree:       row.Degree,
			Institution:  row.Institution,
			Major:        row.Major,
			StartDate:    dates.Format(row.StartDate),
			EndDate:      dates.Format(row.EndDate),
			Achievements: append([]string(nil), row.Achievements...),
		}
	}
	return items
}

// Submit replaces the education slice and advances to the contact step.
func (f *EducationForm) Submit(store *document.Store, nav *wizard.Machine) error {
	if err := store.ReplaceEducation(f.encode()); err != nil {
		return err
	}
	return nav.Advance(wizard.StepContactInfo)
}

// OpenCertifications saves the current rows and activates the certifications
// overlay without moving the linear step.
func (f *EducationForm) OpenCertifications(store *document.Store, nav *wizard.Machine) error {
	if err := store.ReplaceEducation(f.encode()); err != nil {
		return err
	}
	return nav.OpenCertifications()
}
