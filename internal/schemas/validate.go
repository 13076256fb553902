// Package schemas provides JSON Schema validation for structured model output.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// FieldError is one schema violation. Field is "(root)" for top-level violations.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%d schema violation(s): %s", len(ve.Errors), strings.Join(parts, "; "))
}

// Fields returns the distinct violating fields in report order.
func (ve *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(ve.Errors))
	var fields []string
	for _, fe := range ve.Errors {
		if !seen[fe.Field] {
			seen[fe.Field] = true
			fields = append(fields, fe.Field)
		}
	}
	return fields
}

// CompileError is returned when the schema itself cannot be compiled.
type CompileError struct {
	Schema string
	Cause  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile schema %s: %v", e.Schema, e.Cause)
}

func (e *CompileError) Unwrap() error { return e.Cause }

// DocumentError is returned when the document is not parseable JSON.
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document is not valid JSON: %v", e.Cause)
}

func (e *DocumentError) Unwrap() error { return e.Cause }

// Validator is a compiled schema, safe to reuse across documents.
type Validator struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile parses schema content once. name only appears in error messages.
func Compile(name, schemaContent string) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaContent))
	if err != nil {
		return nil, &CompileError{Schema: name, Cause: err}
	}
	return &Validator{name: name, schema: schema}, nil
}

func (v *Validator) Name() string { return v.name }

// Validate checks doc against the schema. Unparseable input yields a
// *DocumentError and violations yield a *ValidationError.
func (v *Validator) Validate(doc string) error {
	result, err := v.schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return &DocumentError{Cause: err}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}

// ValidateJSONString compiles schemaContent and validates doc against it.
func ValidateJSONString(schemaContent, doc string) error {
	v, err := Compile("(inline)", schemaContent)
	if err != nil {
		return err
	}
	return v.Validate(doc)
}
