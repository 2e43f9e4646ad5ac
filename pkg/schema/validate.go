// Package schema validates YAML/JSON documents against a JSON schema.
// Uses [github.com/santhosh-tekuri/jsonschema/v6].
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidationError represents a validation error from JSON schema validation,
// carrying the dotted path to the most specific failing location.
type ValidationError struct {
	Err    error  // Underlying error.
	Path   string // Dotted path to the validation error, e.g. "$.patterns.text_pattern".
	Detail string // Detailed error message.
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("error at %s: %v", e.Path, e.Detail)
	}

	return "validation error: " + e.Detail
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validator validates data against a JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new [Validator] with the provided JSON schema data.
func NewValidator(url string, schemaData []byte) (*Validator, error) {
	var schema any

	err := json.Unmarshal(schemaData, &schema)
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()

	err = compiler.AddResource(url, schema)
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	jss, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: jss}, nil
}

// MustNewValidator creates a new [Validator] and panics on error.
func MustNewValidator(url string, schemaData []byte) *Validator {
	v, err := NewValidator(url, schemaData)
	if err != nil {
		panic(err)
	}

	return v
}

// Validate validates the given data against the schema.
func (s *Validator) Validate(data any) error {
	err := s.schema.Validate(data)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("schema validation: %w", err)
	}

	return &ValidationError{
		Err:    validationErr,
		Path:   pathFromLocation(findMostSpecificLocation(validationErr)),
		Detail: validationErr.Error(),
	}
}

// findMostSpecificLocation recursively searches through all causes to find
// the one with the longest InstanceLocation.
func findMostSpecificLocation(err *jsonschema.ValidationError) []string {
	longest := err.InstanceLocation

	for _, cause := range err.Causes {
		candidateLocation := findMostSpecificLocation(cause)
		if len(candidateLocation) > len(longest) {
			longest = candidateLocation
		}
	}

	return longest
}

// pathFromLocation converts an InstanceLocation slice to a dotted path.
func pathFromLocation(location []string) string {
	var b strings.Builder

	b.WriteString("$")

	for _, part := range location {
		b.WriteString(".")
		b.WriteString(part)
	}

	return b.String()
}
