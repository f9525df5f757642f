// Package types provides type definitions for the resume document model shared
// across the wizard, enhancement, and rendering layers.
package types

// PersonalInfo holds the identity and address fields collected on the first
// wizard step. All fields are free text and default to the empty string.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Country   string `json:"country"`
	City      string `json:"city"`
	Address   string `json:"address"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Portfolio string `json:"portfolio"`
	LinkedIn  string `json:"linkedin"`
}

// WorkExperienceItem is a single work history entry. Dates are stored in the
// canonical DD/MM/YYYY form or empty. Skills is capped at 5 entries by the
// work-experience adapter; Achievements holds uploaded file names only.
type WorkExperienceItem struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Responsibilities string   `json:"responsibilities"`
	Skills           []string `json:"skills"`
	Achievements     []string `json:"achievements"`
}

// EducationItem is a single education entry with canonical textual dates.
type EducationItem struct {
	Degree       string   `json:"degree"`
	Institution  string   `json:"institution"`
	Major        string   `json:"major"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Achievements []string `json:"achievements"`
}

// CertificationItem is a single certification entry. ExpiryDate is empty when
// the certification does not expire.
type CertificationItem struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	IssueDate    string `json:"issueDate"`
	ExpiryDate   string `json:"expiryDate"`
}

// OtherSocial is an additional social media link beyond LinkedIn/portfolio.
type OtherSocial struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ContactInfo is the secondary contact bag collected on the contact step.
// It intentionally overlaps with PersonalInfo: the contact step mirrors
// portfolio/linkedin back into PersonalInfo on submission.
type ContactInfo struct {
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Address     string       `json:"address,omitempty"`
	LinkedIn    string       `json:"linkedin,omitempty"`
	Portfolio   string       `json:"portfolio,omitempty"`
	OtherSocial *OtherSocial `json:"otherSocial,omitempty"`
}

// ResumeDocument is the single source of truth for the wizard session. It is
// what the persistence gateway stores and what the enhancement call receives.
type ResumeDocument struct {
	CurrentStep    int                  `json:"currentStep"`
	CurrentSection string               `json:"currentSection"`
	PersonalInfo   PersonalInfo         `json:"personalInfo"`
	JobTitle       string               `json:"jobTitle"`
	CareerSummary  string               `json:"careerSummary"`
	Skills         []string             `json:"skills"`
	WorkExperience []WorkExperienceItem `json:"workExperience"`
	Education      []EducationItem      `json:"education"`
	Certifications []CertificationItem  `json:"certifications"`
	ContactInfo    ContactInfo          `json:"contactInfo"`
	GeneratedResume string              `json:"generatedResume"`
	IsAIEnhanced    bool                `json:"isAIEnhanced"`
}

// Clone returns a deep copy of the document. Callers receive snapshots, never
// references into the store's owned state.
func (d *ResumeDocument) Clone() *ResumeDocument {
	out := *d
	out.Skills = cloneStrings(d.Skills)
	if d.WorkExperience != nil {
		out.WorkExperience = make([]WorkExperienceItem, len(d.WorkExperience))
		for i, exp := range d.WorkExperience {
			out.WorkExperience[i] = exp
			out.WorkExperience[i].Skills = cloneStrings(exp.Skills)
			out.WorkExperience[i].Achievements = cloneStrings(exp.Achievements)
		}
	}
	if d.Education != nil {
		out.Education = make([]EducationItem, len(d.Education))
		for i, edu := range d.Education {
			out.Education[i] = edu
			out.Education[i].Achievements = cloneStrings(edu.Achievements)
		}
	}
	if d.Certifications != nil {
		out.Certifications = make([]CertificationItem, len(d.Certifications))
		copy(out.Certifications, d.Certifications)
	}
	if d.ContactInfo.OtherSocial != nil {
		social := *d.ContactInfo.OtherSocial
		out.ContactInfo.OtherSocial = &social
	}
	return &out
}

// cloneStrings copies a string slice, preserving nil-ness so cloned documents
// stay deeply equal to their originals.
func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
