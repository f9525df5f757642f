package export

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/types"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		last     string
		expected string
	}{
		{name: "full name", first: "Ada", last: "Lovelace", expected: "Resume_Ada_Lovelace.pdf"},
		{name: "first only", first: "Ada", last: "", expected: "Resume_Ada_.pdf"},
		{name: "no name", first: "", last: "", expected: "Resume.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &types.ResumeDocument{
				PersonalInfo: types.PersonalInfo{FirstName: tt.first, LastName: tt.last},
			}
			assert.Equal(t, tt.expected, FileName(doc))
		})
	}
}

func TestPageFileName(t *testing.T) {
	doc := &types.ResumeDocument{
		PersonalInfo: types.PersonalInfo{FirstName: "Ada", LastName: "Lovelace"},
	}
	assert.Equal(t, "Resume_Ada_Lovelace_page1.png", PageFileName(doc, 1))
	assert.Equal(t, "Resume_page3.png", PageFileName(&types.ResumeDocument{}, 3))
}

func TestEncodeCapturedSplitsScreenshot(t *testing.T) {
	width := 800
	pageHeight := int(float64(width) * paperHeightInches / paperWidthInches)
	shot := image.NewRGBA(image.Rect(0, 0, 800, pageHeight*2+150))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, shot))

	pages, err := encodeCaptured(context.Background(), buf.Bytes(), false)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	for i, data := range pages {
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err, "page %d", i+1)
		assert.Equal(t, 800, img.Bounds().Dx(), "page %d", i+1)
	}

	last, err := png.Decode(bytes.NewReader(pages[2]))
	require.NoError(t, err)
	assert.Equal(t, 150, last.Bounds().Dy())
}

func TestEncodeCapturedRejectsGarbage(t *testing.T) {
	_, err := encodeCaptured(context.Background(), []byte("not a png"), false)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to decode screenshot")
}

func TestSlicePagesSingleShortPage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 800, 600))
	pages := slicePages(img)
	require.Len(t, pages, 1)
	assert.Equal(t, img.Bounds(), pages[0].Bounds())
}

func TestSlicePagesSplitsTallScreenshot(t *testing.T) {
	// 800px wide gives an A4 page height of ~1130px. Three times that plus
	// a remainder should yield four pages.
	width := 800
	pageHeight := int(float64(width) * paperHeightInches / paperWidthInches)
	img := image.NewRGBA(image.Rect(0, 0, 800, pageHeight*3+200))

	pages := slicePages(img)
	require.Len(t, pages, 4)

	for i, pg := range pages[:3] {
		assert.Equal(t, pageHeight, pg.Bounds().Dy(), "page %d", i+1)
	}
	assert.Equal(t, 200, pages[3].Bounds().Dy())
}
