// Package rendering produces the formatted resume preview from a document
// snapshot. The preview is self-contained HTML sized to an A4 page, consumed
// directly by the review step and rasterized by the export path.
package rendering

import (
	"embed"
	"html/template"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DisplayData is the data structure passed to the preview template. Empty
// document fields are replaced with placeholder text so the preview always
// renders a complete page.
type DisplayData struct {
	FirstName      string
	LastName       string
	JobTitle       string
	Phone          string
	Email          string
	Address        string
	Portfolio      string
	LinkedIn       string
	CareerSummary  string
	Skills         []string
	Education      []types.EducationItem
	Certifications []types.CertificationItem
	WorkExperience []types.WorkExperienceItem
}

// RenderHTML renders the resume preview for a document snapshot.
func RenderHTML(doc *types.ResumeDocument) (string, error) {
	tmpl, err := template.New("preview.html.tmpl").ParseFS(templateFS, "templates/preview.html.tmpl")
	if err != nil {
		return "", &TemplateError{Message: "failed to parse preview template", Cause: err}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildDisplayData(doc)); err != nil {
		return "", &TemplateError{Message: "failed to execute preview template", Cause: err}
	}
	return result.String(), nil
}

// buildDisplayData fills placeholder values for anything the user has not
// provided yet.
func buildDisplayData(doc *types.ResumeDocument) *DisplayData {
	info := doc.PersonalInfo

	data := &DisplayData{
		FirstName:      orDefault(info.FirstName, "YOUR"),
		LastName:       orDefault(info.LastName, "NAME"),
		JobTitle:       orDefault(doc.JobTitle, "Your Profession"),
		Phone:          orDefault(info.Phone, "+880 1XXXXXXXXX"),
		Email:          orDefault(info.Email, "your.email@example.com"),
		Address:        orDefault(joinAddress(info), "Your Address"),
		Portfolio:      orDefault(info.Portfolio, "your-portfolio.com"),
		LinkedIn:       orDefault(info.LinkedIn, "linkedin.com/in/yourprofile"),
		CareerSummary:  orDefault(doc.CareerSummary, "Please add your career summary to showcase your professional background and expertise."),
		Skills:         doc.Skills,
		Education:      doc.Education,
		Certifications: doc.Certifications,
		WorkExperience: doc.WorkExperience,
	}
	if len(data.Skills) == 0 {
		data.Skills = []string{"Add your skills"}
	}
	return data
}

// joinAddress assembles the one-line address from whichever components are
// present, in street-to-country order.
func joinAddress(info types.PersonalInfo) string {
	parts := []string{}
	for _, part := range []string{info.Address, info.City, info.State, info.ZipCode, info.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
