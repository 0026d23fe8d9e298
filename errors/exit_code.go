package errors

import (
	"errors"
	"os/exec"
)

// exitCoder wraps an error and specifies an exit code.
type exitCoder struct {
	cause error
	code  int
}

func (e *exitCoder) Error() string {
	return e.cause.Error()
}

func (e *exitCoder) Unwrap() error {
	return e.cause
}

// ExitCode returns the exit code.
func (e *exitCoder) ExitCode() int {
	return e.code
}

// WithExitCode attaches an exit code to an error.
// The exit code can be retrieved later using GetExitCode.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &exitCoder{
		cause: err,
		code:  code,
	}
}

// GetExitCode returns the exit code carried by the error.
// It checks, in order: a nil error (0), an attached exit code, the exit
// status of a wrapped *exec.ExitError, and finally defaults to 1.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var coder *exitCoder
	if errors.As(err, &coder) {
		return coder.code
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return 1
}
