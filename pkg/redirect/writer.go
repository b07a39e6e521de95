package redirect

import (
	"fmt"
	"os"
)

// WriteError reports a failure to persist the generated configuration.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteConf creates or truncates path and writes conf in one pass.
//
// A failed write may leave a truncated file behind; callers treat any error
// as fatal.
func WriteConf(path, conf string) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if _, err := f.WriteString(conf); err != nil {
		_ = f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
