package errors

import (
	"fmt"
	"strings"
)

// ConfigKeys are the environment variables read at startup, in the order
// they are loaded.
var ConfigKeys = []string{
	"DEBUG",
	"LOG_LEVEL",
	"HTTP_PORT",
	"CLOUD_PROVIDER",
	"TIMESTAMP_OFFSET",
	"WAIT_FOR_OPERATIONS",
}

// ErrEnvLoad is returned when a .env file exists but cannot be read or
// parsed. A missing file is not an error.
type ErrEnvLoad struct {
	Path string
	Err  error
}

func (e ErrEnvLoad) Error() string {
	return fmt.Sprintf("cannot load environment file %s: %v", e.Path, e.Err)
}

func (e ErrEnvLoad) Unwrap() error {
	return e.Err
}

func NewErrEnvLoad(path string, err error) error {
	return ErrEnvLoad{Path: path, Err: err}
}

// ErrConfigSetup is returned when the environment does not describe a
// usable run configuration.
type ErrConfigSetup struct {
	Err error
}

func (e ErrConfigSetup) Error() string {
	return fmt.Sprintf("invalid configuration (check %s and the provider credentials): %v",
		strings.Join(ConfigKeys, ", "), e.Err)
}

func (e ErrConfigSetup) Unwrap() error {
	return e.Err
}

func NewErrConfigSetup(err error) error {
	return ErrConfigSetup{Err: err}
}
