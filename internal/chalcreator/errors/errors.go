// Package errors defines the error taxonomy used while provisioning a challenge.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors for every failure class
var (
	// Input errors
	ErrValidation = errors.New("validation failed")

	// File system errors
	ErrAlreadyExists    = errors.New("already exists")
	ErrPermissionDenied = errors.New("permission denied")
	ErrPathNotFound     = errors.New("path not found")
	ErrOtherIO          = errors.New("i/o error")

	// Network errors
	ErrFetch = errors.New("fetch failed")
)

// ValidationError reports a bad or missing input value
type ValidationError struct {
	Field  string
	Reason string
	// Others holds the remaining problems when more than one field was bad.
	Others []string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	for _, o := range e.Others {
		msg += "; " + o
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ProvisionError reports a failed filesystem operation on a named path
type ProvisionError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *ProvisionError) Error() string {
	cause := e.Err
	var pathErr *fs.PathError
	if errors.As(cause, &pathErr) {
		cause = pathErr.Err
	}
	return fmt.Sprintf("%s %s: %v (%v)", e.Op, e.Path, e.Kind, cause)
}

func (e *ProvisionError) Unwrap() []error { return []error{e.Kind, e.Err} }

// FetchError reports a failed download
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetch}
	}
	return []error{ErrFetch, e.Err}
}

// Classify maps an OS error onto the provisioning taxonomy.
// It returns nil when err is nil.
func Classify(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var kind error
	switch {
	case errors.Is(err, fs.ErrExist):
		kind = ErrAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		kind = ErrPermissionDenied
	case errors.Is(err, fs.ErrNotExist):
		kind = ErrPathNotFound
	default:
		kind = ErrOtherIO
	}
	return &ProvisionError{Op: op, Path: path, Kind: kind, Err: err}
}

// Wrap wraps an error with additional context
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is checks if the error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As checks if the error can be unwrapped to the target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
