package document

import "github.com/jonathan/resume-wizard/internal/types"

// DefaultDocument returns the fixed all-empty document a session starts from:
// step 1 with the education section active and every content field blank.
func DefaultDocument() *types.ResumeDocument {
	return &types.ResumeDocument{
		CurrentStep:    1,
		CurrentSection: "education",
		Skills:         []string{},
		WorkExperience: []types.WorkExperienceItem{},
		Education:      []types.EducationItem{},
		Certifications: []types.CertificationItem{},
	}
}
