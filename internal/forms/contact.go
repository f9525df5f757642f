package forms

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// OtherSocialInput is the platform/URL pair for an additional social link.
// The pair is only stored when both halves are filled in.
type OtherSocialInput struct {
	Platform string `json:"platform"`
	URL      string `json:"url" validate:"omitempty,url"`
}

// ContactForm is the contact-information step adapter. URL-shaped fields are
// validated before submission; submission is blocked until they are corrected
// or cleared.
type ContactForm struct {
	Email       string           `json:"email" validate:"omitempty,email"`
	Phone       string           `json:"phone"`
	Address     string           `json:"address"`
	LinkedIn    string           `json:"linkedin" validate:"omitempty,url"`
	Portfolio   string           `json:"portfolio" validate:"omitempty,url"`
	OtherSocial OtherSocialInput `json:"otherSocial"`
}

// FieldError is a field-level validation failure surfaced to the form layer.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewContactForm loads the persisted contact bag for editing.
func NewContactForm(doc *types.ResumeDocument) *ContactForm {
	form := &ContactForm{
		Email:     doc.ContactInfo.Email,
		Phone:     doc.ContactInfo.Phone,
		Address:   doc.ContactInfo.Address,
		LinkedIn:  doc.ContactInfo.LinkedIn,
		Portfolio: doc.ContactInfo.Portfolio,
	}
	if doc.ContactInfo.OtherSocial != nil {
		form.OtherSocial = OtherSocialInput{
			Platform: doc.ContactInfo.OtherSocial.Platform,
			URL:      doc.ContactInfo.OtherSocial.URL,
		}
	}
	return form
}

// Validate checks the URL and email shaped fields, returning the first
// field-level failure.
func (f *ContactForm) Validate() error {
	err := validator.New().Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{
			Field:   verrs[0].Field(),
			Message: "please enter a valid " + verrs[0].Tag(),
		}
	}
	return err
}

// Submit validates, stores the contact bag, mirrors portfolio and LinkedIn
// into the personal info, and advances to the AI generation step.
func (f *ContactForm) Submit(store *document.Store, nav *wizard.Machine) error {
	if err := f.Validate(); err != nil {
		return err
	}

	info := types.ContactInfo{
		Email:     f.Email,
		Phone:     f.Phone,
		Address:   f.Address,
		LinkedIn:  f.LinkedIn,
		Portfolio: f.Portfolio,
	}
	if f.OtherSocial.Platform != "" && f.OtherSocial.URL != "" {
		info.OtherSocial = &types.OtherSocial{
			Platform: f.OtherSocial.Platform,
			URL:      f.OtherSocial.URL,
		}
	}

	if err := store.UpdateContactInfo(info); err != nil {
		return err
	}
	if err := store.UpdatePersonalInfo(map[string]string{
		"portfolio": f.Portfolio,
		"linkedin":  f.LinkedIn,
	}); err != nil {
		return err
	}
	return nav.Advance(wizard.StepAIGeneration)
}
