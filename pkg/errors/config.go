package errors

import (
	"fmt"
)

// ErrAWSConfigValidation is returned when AWS provider config fails Validate().
type ErrAWSConfigValidation struct {
	Err error
}

func (e ErrAWSConfigValidation) Error() string {
	return fmt.Sprintf("aws config validation failed: %v", e.Err)
}

func (e ErrAWSConfigValidation) Unwrap() error {
	return e.Err
}

func NewAWSConfigValidation(err error) error {
	return ErrAWSConfigValidation{Err: err}
}

// ErrGCPConfigValidation is returned when GCP provider config fails Validate().
type ErrGCPConfigValidation struct {
	Err error
}

func (e ErrGCPConfigValidation) Error() string {
	return fmt.Sprintf("gcp config validation failed: %v", e.Err)
}

func (e ErrGCPConfigValidation) Unwrap() error {
	return e.Err
}

func NewGCPConfigValidation(err error) error {
	return ErrGCPConfigValidation{Err: err}
}

// ErrUnsupportedProvider is returned when the provider string is unknown.
type ErrUnsupportedProvider struct {
	ProviderType string
}

func (e ErrUnsupportedProvider) Error() string {
	return fmt.Sprintf("unsupported provider: %s", e.ProviderType)
}

func NewUnsupportedProvider(pt string) error {
	return ErrUnsupportedProvider{ProviderType: pt}
}

// ErrBoolParse wraps failures parsing a boolean env var such as DEBUG.
type ErrBoolParse struct {
	Name     string
	RawValue string
	Err      error
}

func (e ErrBoolParse) Error() string {
	return fmt.Sprintf("failed to parse %s=%q: %v", e.Name, e.RawValue, e.Err)
}

func (e ErrBoolParse) Unwrap() error {
	return e.Err
}

func NewErrBoolParse(name, raw string, err error) error {
	return ErrBoolParse{Name: name, RawValue: raw, Err: err}
}

// ErrPortParse wraps failures parsing HTTP_PORT.
type ErrPortParse struct {
	RawValue string
	Err      error
}

func (e ErrPortParse) Error() string {
	return fmt.Sprintf("invalid HTTP_PORT=%q: %v", e.RawValue, e.Err)
}

func (e ErrPortParse) Unwrap() error {
	return e.Err
}

func NewErrPortParse(raw string, err error) error {
	return ErrPortParse{RawValue: raw, Err: err}
}

// ErrPortOutOfRange indicates HTTP_PORT is outside 1-65535.
type ErrPortOutOfRange struct {
	Port int
}

func (e ErrPortOutOfRange) Error() string {
	return fmt.Sprintf("HTTP_PORT out of bounds: %d (must be 1-65535)", e.Port)
}

func NewErrPortOutOfRange(port int) error {
	return ErrPortOutOfRange{Port: port}
}

// ErrCloudConfigNotInit indicates LoadCloudConfig wasn't called or failed.
type ErrCloudConfigNotInit struct{}

func (e ErrCloudConfigNotInit) Error() string {
	return "cloud configuration not initialized"
}

func NewErrCloudConfigNotInit() error {
	return ErrCloudConfigNotInit{}
}

// ErrMissingCredentials is returned when AWS credentials are incomplete.
type ErrMissingCredentials struct {
	Missing []string
}

func (e ErrMissingCredentials) Error() string {
	return fmt.Sprintf("missing AWS credentials: %s", e.Missing)
}

// NewErrMissingCredentials constructs an ErrMissingCredentials listing which
// environment variables were empty.
func NewErrMissingCredentials(missing []string) error {
	return ErrMissingCredentials{Missing: missing}
}

// ErrCredentialsFile indicates GOOGLE_APPLICATION_CREDENTIALS points at
// something that is not a readable file.
type ErrCredentialsFile struct {
	Path string
	Err  error
}

func (e ErrCredentialsFile) Error() string {
	return fmt.Sprintf("invalid GOOGLE_APPLICATION_CREDENTIALS %q: %v", e.Path, e.Err)
}

func (e ErrCredentialsFile) Unwrap() error {
	return e.Err
}

func NewErrCredentialsFile(path string, err error) error {
	return ErrCredentialsFile{Path: path, Err: err}
}
