// Package prompts provides the externalized prompt templates sent to the
// enhancement service. Prompts are stored as JSON files and embedded at
// compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed *.json
var promptFiles embed.FS

// Get retrieves a prompt by filename and key. The filename should not include
// a path (e.g., "enhance.json").
func Get(filename, key string) (string, error) {
	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return "", fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// Format replaces template placeholders in the form {{.Key}} with values from
// data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}

// Enhancement builds the full enhancement prompt for a serialized document
// snapshot.
func Enhancement(documentJSON string) (string, error) {
	template, err := Get("enhance.json", "enhance_resume")
	if err != nil {
		return "", err
	}
	return Format(template, map[string]string{"Document": documentJSON}), nil
}
