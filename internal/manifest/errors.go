package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the manifest package
var (
	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest file not found")

	// ErrMissingField indicates a required key is absent
	ErrMissingField = errors.New("required field missing")

	// ErrInvalidType indicates a value does not have the expected shape
	ErrInvalidType = errors.New("invalid field type")

	// ErrInvalidValue indicates a well-typed value that is not acceptable
	ErrInvalidValue = errors.New("invalid field value")

	// ErrUnknownField indicates a key the loader does not know, in strict mode
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidFormat indicates the manifest file cannot be parsed
	ErrInvalidFormat = errors.New("manifest is not well-formed")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .py, .hcl, .manifest, .yaml, .yml, .json or .toml)")
)

// MissingFieldError reports a required key that is absent from the manifest
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// TypeError reports a value whose shape does not match the field
type TypeError struct {
	Field string
	Want  string
	Got   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s must be %s, got %s", ErrInvalidType, e.Field, e.Want, e.Got)
}

func (e *TypeError) Unwrap() error {
	return ErrInvalidType
}

// ValueError reports a value of the right shape that fails a constraint
type ValueError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s %s", ErrInvalidValue, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s %q %s", ErrInvalidValue, e.Field, e.Value, e.Reason)
}

func (e *ValueError) Unwrap() error {
	return ErrInvalidValue
}
