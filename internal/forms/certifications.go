package forms

import (
	"time"

	"github.com/jonathan/resume-wizard/internal/dates"
	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// CertificationRow is the editing shape for one certification. ExpiryDate nil
// means the certification does not expire.
type CertificationRow struct {
	Title        string     `json:"title"`
	Organization string     `json:"organization"`
	IssueDate    *time.Time `json:"issueDate"`
	ExpiryDate   *time.Time `json:"expiryDate"`
}

// CertificationsForm is the adapter for the certifications overlay.
type CertificationsForm struct {
	Rows []CertificationRow
}

// NewCertificationsForm loads the persisted certifications, seeding one blank
// row when the slice is empty.
func NewCertificationsForm(doc *types.ResumeDocument) *CertificationsForm {
	form := &CertificationsForm{}
	for _, cert := range doc.Certifications {
		form.Rows = append(form.Rows, CertificationRow{
			Title:        cert.Title,
			Organization: cert.Organization,
			IssueDate:    dates.Parse(cert.IssueDate),
			ExpiryDate:   dates.Parse(cert.ExpiryDate),
		})
	}
	if len(form.Rows) == 0 {
		form.Rows = []CertificationRow{{}}
	}
	return form
}

// AddRow appends a blank certification row.
func (f *CertificationsForm) AddRow() {
	f.Rows = append(f.Rows, CertificationRow{})
}

// RemoveRow deletes a row by index, keeping at least one row.
func (f *CertificationsForm) RemoveRow(i int) bool {
	if len(f.Rows) <= 1 || i < 0 || i >= len(f.Rows) {
		return false
	}
	f.Rows = append(f.Rows[:i], f.Rows[i+1:]...)
	return true
}

func (f *CertificationsForm) encode() []types.CertificationItem {
	items := make([]types.CertificationItem, len(f.Rows))
	for i, row := range f.Rows {
		items[i] = types.CertificationItem{
			Title:        row.Title,
			Organization: row.Organization,
			IssueDate:    dates.Format(row.IssueDate),
			ExpiryDate:   dates.Format(row.ExpiryDate),
		}
	}
	return items
}

// Submit saves the certifications, closes the overlay, and re-enters the
// linear sequence at the contact step.
func (f *CertificationsForm) Submit(store *document.Store, nav *wizard.Machine) error {
	if err := store.ReplaceCertifications(f.encode()); err != nil {
		return err
	}
	if err := nav.CloseSection(); err != nil {
		return err
	}
	return nav.Advance(wizard.StepContactInfo)
}

// BackToEducation saves the certifications and closes the overlay, leaving the
// linear step where it was.
func (f *CertificationsForm) BackToEducation(store *document.Store, nav *wizard.Machine) error {
	if err := store.ReplaceCertifications(f.encode()); err != nil {
		return err
	}
	return nav.CloseSection()
}
