package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies the class of a failure.
type ErrorCode string

const (
	// ErrReadDir indicates the schema directory could not be listed.
	ErrReadDir ErrorCode = "compile-read-dir"
	// ErrReadFile indicates a schema file could not be read.
	ErrReadFile ErrorCode = "compile-read-file"
	// ErrXMLParse indicates a schema file is not well-formed XML.
	ErrXMLParse ErrorCode = "xml-parse-error"

	// ErrChildNotAllowed indicates a child is not legal under its parent.
	ErrChildNotAllowed ErrorCode = "schema-child-not-allowed"
	// ErrElementNotDeclared indicates the parent element is absent from the schema.
	ErrElementNotDeclared ErrorCode = "schema-element-not-declared"
)

// Validation describes one child placement that the compiled schema does not
// allow. Path is the parent qualified name; Actual is the offending child.
//
//nolint:errname // public API name uses XSD domain term.
type Validation struct {
	Code     string
	Message  string
	Path     string
	Actual   string
	Expected []string
}

// ValidationList is an error that wraps one or more validation errors.
type ValidationList []Validation //nolint:errname // public API name, keep for compatibility.

// Error returns a compact summary of the validation errors.
func (v ValidationList) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return v[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", v[0].Error(), len(v)-1)
	}
}

// Error formats the validation for display, including code, message, and context.
func (v *Validation) Error() string {
	if v == nil {
		return "validation <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", v.Code, v.Message))
	if v.Path != "" {
		b.WriteString(fmt.Sprintf(" at %s", v.Path))
	}
	if len(v.Expected) > 0 {
		b.WriteString(fmt.Sprintf(" (expected: %s)", strings.Join(v.Expected, ", ")))
	}
	if v.Actual != "" {
		b.WriteString(fmt.Sprintf(" (actual: %s)", v.Actual))
	}
	return b.String()
}

// NewValidation builds a Validation with a code, message, and optional path.
func NewValidation(code ErrorCode, msg, path string) Validation {
	return Validation{Code: string(code), Message: msg, Path: path}
}

// NewValidationf formats a message and builds a Validation.
func NewValidationf(code ErrorCode, path, format string, args ...any) Validation {
	return NewValidation(code, fmt.Sprintf(format, args...), path)
}

// AsValidations extracts validation errors from an error returned by validation helpers.
func AsValidations(err error) ([]Validation, bool) {
	if err == nil {
		return nil, false
	}
	var list ValidationList
	if errors.As(err, &list) {
		return []Validation(list), true
	}
	return nil, false
}
