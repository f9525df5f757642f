package types

// EnhancedResume is the validated partial update produced by parsing an
// enhancement response. A nil/empty field means the response did not carry it
// and the corresponding document field must be left untouched.
type EnhancedResume struct {
	PersonalInfo   map[string]string    `json:"personalInfo,omitempty"`
	JobTitle       *string              `json:"jobTitle,omitempty"`
	CareerSummary  *string              `json:"careerSummary,omitempty"`
	Skills         []string             `json:"skills,omitempty"`
	WorkExperience []WorkExperienceItem `json:"workExperience,omitempty"`
	Education      []EducationItem      `json:"education,omitempty"`
	Certifications []CertificationItem  `json:"certifications,omitempty"`
}

// Empty reports whether the partial update carries no recognized fields.
func (e *EnhancedResume) Empty() bool {
	return len(e.PersonalInfo) == 0 &&
		e.JobTitle == nil &&
		e.CareerSummary == nil &&
		e.Skills == nil &&
		e.WorkExperience == nil &&
		e.Education == nil &&
		e.Certifications == nil
}
