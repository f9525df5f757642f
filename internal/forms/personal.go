package forms

import (
	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// PersonalForm is the personal-information step adapter. All fields are free
// text; the form submits its slice wholesale.
type PersonalForm struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Country   string `json:"country"`
	City      string `json:"city"`
	Address   string `json:"address"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
}

// NewPersonalForm loads the persisted personal info for editing.
func NewPersonalForm(doc *types.ResumeDocument) *PersonalForm {
	info := doc.PersonalInfo
	return &PersonalForm{
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Phone:     info.Phone,
		Email:     info.Email,
		Country:   info.Country,
		City:      info.City,
		Address:   info.Address,
		State:     info.State,
		ZipCode:   info.ZipCode,
	}
}

// Submit writes the personal info back and advances to the career summary
// step. Portfolio and LinkedIn are owned by the contact step and preserved.
func (f *PersonalForm) Submit(store *document.Store, nav *wizard.Machine) error {
	prior := store.Snapshot().PersonalInfo
	if err := store.ReplacePersonalInfo(types.PersonalInfo{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Phone:     f.Phone,
		Email:     f.Email,
		Country:   f.Country,
		City:      f.City,
		Address:   f.Address,
		State:     f.State,
		ZipCode:   f.ZipCode,
		Portfolio: prior.Portfolio,
		LinkedIn:  prior.LinkedIn,
	}); err != nil {
		return err
	}
	return nav.Advance(wizard.StepCareerSummary)
}
