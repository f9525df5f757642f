package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

func TestNewEducationForm_FlexibleDates(t *testing.T) {
	doc := document.DefaultDocument()
	doc.Education = []types.EducationItem{
		{Degree: "BSc", StartDate: "01/09/2017", EndDate: "2021-06-30"},
	}

	form := NewEducationForm(doc)
	require.Len(t, form.Rows, 1)
	require.NotNil(t, form.Rows[0].StartDate)
	require.NotNil(t, form.Rows[0].EndDate, "dash-separated dates are accepted on this path")
}

func TestNewEducationForm_SeedsBlankRow(t *testing.T) {
	form := NewEducationForm(document.DefaultDocument())
	require.Len(t, form.Rows, 1)
	assert.False(t, form.RemoveRow(0))
}

func TestEducationForm_SubmitAdvancesToContact(t *testing.T) {
	store, nav := newSession(t)
	require.NoError(t, nav.Advance(wizard.StepEducation))

	form := NewEducationForm(store.Snapshot())
	form.Rows[0].Degree = "MSc"
	form.Rows[0].Institution = "MIT"
	require.NoError(t, form.Submit(store, nav))

	doc := store.Snapshot()
	require.Len(t, doc.Education, 1)
	assert.Equal(t, "MSc", doc.Education[0].Degree)
	assert.Equal(t, "", doc.Education[0].StartDate)

	step, _ := nav.Current()
	assert.Equal(t, wizard.StepContactInfo, step)
}

func TestEducationForm_CertificationsSideFlow(t *testing.T) {
	store, nav := newSession(t)
	require.NoError(t, nav.Advance(wizard.StepEducation))

	edu := NewEducationForm(store.Snapshot())
	edu.Rows[0].Degree = "BSc"
	require.NoError(t, edu.OpenCertifications(store, nav))

	// Education was saved, section overrides the view, step stays put.
	step, section := nav.Current()
	assert.Equal(t, wizard.StepEducation, step)
	assert.Equal(t, wizard.SectionCertifications, section)
	assert.Equal(t, "BSc", store.Snapshot().Education[0].Degree)

	certs := NewCertificationsForm(store.Snapshot())
	certs.Rows[0].Title = "CKA"
	require.NoError(t, certs.Submit(store, nav))

	// Submitting the overlay re-enters the linear flow at the contact step.
	step, section = nav.Current()
	assert.Equal(t, wizard.StepContactInfo, step)
	assert.Equal(t, wizard.SectionEducation, section)
	require.Len(t, store.Snapshot().Certifications, 1)
	assert.Equal(t, "CKA", store.Snapshot().Certifications[0].Title)
}

func TestCertificationsForm_BackToEducation(t *testing.T) {
	store, nav := newSession(t)
	require.NoError(t, nav.Advance(wizard.StepEducation))
	require.NoError(t, nav.OpenCertifications())

	certs := NewCertificationsForm(store.Snapshot())
	certs.Rows[0].Title = "AWS SAA"
	require.NoError(t, certs.BackToEducation(store, nav))

	step, section := nav.Current()
	assert.Equal(t, wizard.StepEducation, step)
	assert.Equal(t, wizard.SectionEducation, section)
	assert.Equal(t, "AWS SAA", store.Snapshot().Certifications[0].Title)
}

func TestCertificationsForm_RowFloorAndOptionalExpiry(t *testing.T) {
	store, nav := newSession(t)
	form := NewCertificationsForm(store.Snapshot())

	assert.False(t, form.RemoveRow(0))

	form.Rows[0].Title = "Cert"
	require.NoError(t, nav.OpenCertifications())
	require.NoError(t, form.Submit(store, nav))

	cert := store.Snapshot().Certifications[0]
	assert.Equal(t, "", cert.ExpiryDate, "missing expiry stays empty")
}
