package errors

import (
	"fmt"
	"strings"
)

// ErrWrongConfigType indicates the passed-in ProviderConfig does not belong
// to the provider it was handed to.
type ErrWrongConfigType struct {
	Got  interface{}
	Want string
}

func (e ErrWrongConfigType) Error() string {
	return fmt.Sprintf("unexpected provider config type %T, want %s", e.Got, e.Want)
}

func NewWrongConfigType(got interface{}, want string) error {
	return ErrWrongConfigType{Got: got, Want: want}
}

// ErrAWSConfigLoad wraps failures loading AWS SDK config.
type ErrAWSConfigLoad struct {
	Err error
}

func (e ErrAWSConfigLoad) Error() string {
	return fmt.Sprintf("unable to load AWS SDK config: %v", e.Err)
}

func (e ErrAWSConfigLoad) Unwrap() error {
	return e.Err
}

func NewAWSConfigLoad(err error) error {
	return ErrAWSConfigLoad{Err: err}
}

// ErrGCPClientInit wraps failures building the Compute Engine client.
type ErrGCPClientInit struct {
	Err error
}

func (e ErrGCPClientInit) Error() string {
	return fmt.Sprintf("unable to create compute client: %v", e.Err)
}

func (e ErrGCPClientInit) Unwrap() error {
	return e.Err
}

func NewGCPClientInit(err error) error {
	return ErrGCPClientInit{Err: err}
}

// ErrDescribeInstances wraps failures in DescribeInstances.
type ErrDescribeInstances struct {
	Err error
}

func (e ErrDescribeInstances) Error() string {
	return fmt.Sprintf("failed to describe instances, make sure your AWS credentials have not timed out: %v", e.Err)
}

func (e ErrDescribeInstances) Unwrap() error {
	return e.Err
}

func NewDescribeInstances(err error) error {
	return ErrDescribeInstances{Err: err}
}

// ErrOperationFailed reports a long-running operation that finished with errors.
type ErrOperationFailed struct {
	Operation string
	Messages  []string
}

func (e ErrOperationFailed) Error() string {
	return fmt.Sprintf("operation %q failed with error(s): %s", e.Operation, strings.Join(e.Messages, ", "))
}

func NewOperationFailed(op string, messages []string) error {
	return ErrOperationFailed{Operation: op, Messages: messages}
}
