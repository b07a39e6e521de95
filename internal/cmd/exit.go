package cmd

import (
	"errors"
	"fmt"
	"io"
)

// ExitNotModified is returned when the remote rules still match --etag.
const ExitNotModified = 3

// exitGeneralFailure covers errors that carry no specific exit code.
const exitGeneralFailure = 1

// ExitError carries the process exit code for a failed run.
type ExitError struct {
	Code    int
	Message string
	Err     error

	// Logged is set when the failure was already written to the CLI log.
	Logged bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: %v (exit code %d)", e.Message, e.Err, e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitError creates an error that will cause the CLI to exit with the given code.
func exitError(code int, message string, err error) error {
	return &ExitError{Code: code, Message: message, Err: err}
}

// loggedExitError is exitError for failures already reported through the CLI logger.
func loggedExitError(code int, message string, err error) error {
	return &ExitError{Code: code, Message: message, Err: err, Logged: true}
}

// Report prints err to w unless it is a not-modified outcome or was already logged.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && (exitErr.Logged || exitErr.Code == ExitNotModified) {
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

// ExitCode maps an Execute result to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return exitGeneralFailure
}
