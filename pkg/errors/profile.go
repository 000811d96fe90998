package errors

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

type ErrReadFile struct {
	Path string
	Err  error
}

func (e ErrReadFile) Error() string {
	return fmt.Sprintf("read file %s: %v", e.Path, e.Err)
}

func (e ErrReadFile) Unwrap() error {
	return e.Err
}

func NewReadFileError(path string, err error) error {
	return ErrReadFile{Path: path, Err: err}
}

// ErrHCLParseFailure wraps an hcl.Diagnostics from parsing HCL.
type ErrHCLParseFailure struct {
	Diagnostics hcl.Diagnostics
}

func (e ErrHCLParseFailure) Error() string {
	return fmt.Sprintf("failed to parse HCL: %s", e.Diagnostics.Error())
}

func (e ErrHCLParseFailure) Unwrap() error {
	return e.Diagnostics.Errs()[0]
}

// ErrHCLDecodeFailure wraps an hcl.Diagnostics from decoding HCL bodies.
type ErrHCLDecodeFailure struct {
	Diagnostics hcl.Diagnostics
}

func (e ErrHCLDecodeFailure) Error() string {
	return fmt.Sprintf("failed to decode HCL: %s", e.Diagnostics.Error())
}

func (e ErrHCLDecodeFailure) Unwrap() error {
	return e.Diagnostics.Errs()[0]
}

type ErrParse struct {
	Err error
}

func (e ErrParse) Error() string {
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e ErrParse) Unwrap() error {
	return e.Err
}

// ErrUnsupportedFormat is returned for a profile format other than hcl or json.
type ErrUnsupportedFormat struct {
	Format string
}

func (e ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported profile format %q (want hcl or json)", e.Format)
}

func NewUnsupportedFormat(format string) error {
	return ErrUnsupportedFormat{Format: format}
}
