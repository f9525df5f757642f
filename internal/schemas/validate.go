// Package schemas provides JSON Schema validation for the enhancement
// response. The schema is embedded and compiled per top-level field so that a
// single mistyped field can be dropped without rejecting the whole payload.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed enhanced_resume.schema.json
var enhancedSchemaBytes []byte

// ErrUnknownField indicates a response field outside the recognized document
// schema.
type ErrUnknownField struct {
	Field string
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// ValidationError collects field-path validation failures for one field.
type ValidationError struct {
	Field  string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q failed validation: %s", e.Field, strings.Join(e.Errors, "; "))
}

var (
	fieldSchemas map[string]*gojsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compile parses the embedded schema and compiles one sub-schema per
// recognized top-level property.
func compile() {
	var doc struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(enhancedSchemaBytes, &doc); err != nil {
		compileErr = fmt.Errorf("failed to parse embedded schema: %w", err)
		return
	}

	fieldSchemas = make(map[string]*gojsonschema.Schema, len(doc.Properties))
	for name, raw := range doc.Properties {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			compileErr = fmt.Errorf("failed to compile schema for %q: %w", name, err)
			return
		}
		fieldSchemas[name] = schema
	}
}

// Fields returns the recognized top-level field names.
func Fields() ([]string, error) {
	compileOnce.Do(compile)
	if compileErr != nil {
		return nil, compileErr
	}
	names := make([]string, 0, len(fieldSchemas))
	for name := range fieldSchemas {
		names = append(names, name)
	}
	return names, nil
}

// ValidateField checks one top-level response fragment against its sub-schema.
// Unknown fields return ErrUnknownField; type mismatches return a
// ValidationError carrying the failing paths.
func ValidateField(field string, fragment json.RawMessage) error {
	compileOnce.Do(compile)
	if compileErr != nil {
		return compileErr
	}

	schema, ok := fieldSchemas[field]
	if !ok {
		return &ErrUnknownField{Field: field}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(fragment))
	if err != nil {
		return &ValidationError{Field: field, Errors: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Field: field}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return verr
}
