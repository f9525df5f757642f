package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/types"
)

func renderDoc(t *testing.T, doc *types.ResumeDocument) *goquery.Document {
	t.Helper()
	html, err := RenderHTML(doc)
	require.NoError(t, err)
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return parsed
}

func TestRenderHTMLPopulatedDocument(t *testing.T) {
	doc := &types.ResumeDocument{
		PersonalInfo: types.PersonalInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Phone:     "+44 20 1234 5678",
			Email:     "ada@example.com",
			Address:   "12 St James's Square",
			City:      "London",
			Country:   "UK",
			Portfolio: "https://ada.dev",
			LinkedIn:  "https://linkedin.com/in/ada",
		},
		JobTitle:      "Software Engineer",
		CareerSummary: "Pioneer of computing.",
		Skills:        []string{"Go", "Mathematics"},
		WorkExperience: []types.WorkExperienceItem{
			{
				Company:          "Analytical Engines Ltd",
				Position:         "Lead Programmer",
				StartDate:        "01/06/1842",
				EndDate:          "01/06/1843",
				Responsibilities: "Wrote the first published algorithm.",
			},
		},
		Education: []types.EducationItem{
			{Degree: "BSc Mathematics", Institution: "University of London", Major: "Analysis", StartDate: "01/09/1835", EndDate: "01/06/1839"},
		},
		Certifications: []types.CertificationItem{
			{Title: "Charter Member", Organization: "Royal Society", IssueDate: "01/01/1840"},
		},
	}

	parsed := renderDoc(t, doc)

	assert.Equal(t, "Ada Lovelace", strings.TrimSpace(parsed.Find("h1").Text()))
	assert.Equal(t, "Software Engineer", strings.TrimSpace(parsed.Find(".job-title").First().Text()))
	assert.Equal(t, "12 St James's Square, London, UK", strings.TrimSpace(parsed.Find(".address").Text()))

	skills := parsed.Find("#skills li").Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})
	assert.Equal(t, []string{"Go", "Mathematics"}, skills)

	assert.Equal(t, 1, parsed.Find("#experience .entry").Length())
	assert.Contains(t, parsed.Find("#experience").Text(), "Analytical Engines Ltd")
	assert.Contains(t, parsed.Find("#education").Text(), "BSc Mathematics")
	assert.Contains(t, parsed.Find("#certifications").Text(), "Royal Society")
}

func TestRenderHTMLEmptyDocumentShowsPlaceholders(t *testing.T) {
	parsed := renderDoc(t, &types.ResumeDocument{})

	assert.Equal(t, "YOUR NAME", strings.TrimSpace(parsed.Find("h1").Text()))
	assert.Equal(t, "Your Profession", strings.TrimSpace(parsed.Find(".job-title").First().Text()))
	assert.Equal(t, "Your Address", strings.TrimSpace(parsed.Find(".address").Text()))
	assert.Equal(t, "Add your skills", strings.TrimSpace(parsed.Find("#skills li").Text()))

	// Empty collections collapse their sections entirely.
	assert.Equal(t, 0, parsed.Find("#experience").Length())
	assert.Equal(t, 0, parsed.Find("#education").Length())
	assert.Equal(t, 0, parsed.Find("#certifications").Length())
}

func TestRenderHTMLEscapesUserContent(t *testing.T) {
	doc := &types.ResumeDocument{
		JobTitle: `<script>alert("x")</script>`,
	}

	html, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Contains(t, parsed.Find(".job-title").Text(), `<script>alert("x")</script>`)
}
