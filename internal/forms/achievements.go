// Package forms provides the step data adapters: each wizard step's editable
// in-memory representation and its two-way conversion to the canonical
// document model.
package forms

import (
	"fmt"

	"github.com/google/uuid"
)

// AchievementFile tracks an uploaded achievement attachment for the duration
// of the session. Only the display name is mirrored into the persisted
// document; the bytes and preview handle are ephemeral.
type AchievementFile struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Size    string    `json:"size"`
	Preview string    `json:"preview"`
}

// NewAchievementFile builds the session record for an upload, assigning a
// reference ID, a preview handle, and a human-readable size label.
func NewAchievementFile(name string, sizeBytes int64) AchievementFile {
	id := uuid.New()
	return AchievementFile{
		ID:      id,
		Name:    name,
		Size:    HumanSize(sizeBytes),
		Preview: "mem://" + id.String(),
	}
}

// HumanSize renders a byte count as the megabyte label shown next to uploads.
func HumanSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

// removeString deletes the first occurrence of v from s.
func removeString(s []string, v string) []string {
	for i, item := range s {
		if item == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
