package errors

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyValue   = errors.New("must not be empty")
	ErrNotInteger   = errors.New("must be an integer")
	ErrNegative     = errors.New("must not be negative")
	ErrZoneFormat   = errors.New("must look like us-central1-f")
	ErrOffsetFormat = errors.New("must look like -08:00")
	ErrFormatFlag   = errors.New("must be hcl or json")
)

// ErrInputValidation wraps a rejected run parameter.
type ErrInputValidation struct {
	Field string
	Value string
	Err   error
}

func (e ErrInputValidation) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e ErrInputValidation) Unwrap() error {
	return e.Err
}

func NewInputValidation(field, value string, err error) error {
	return ErrInputValidation{Field: field, Value: value, Err: err}
}
