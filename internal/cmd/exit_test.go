package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		message string
		err     error
		want    string
	}{
		{
			name:    "basic error",
			code:    1,
			message: "Something failed",
			err:     assert.AnError,
			want:    "Something failed",
		},
		{
			name:    "includes exit code",
			code:    ExitNotModified,
			message: "Redirect rules not modified",
			err:     assert.AnError,
			want:    "exit code 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := exitError(tt.code, tt.message, tt.err)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want))
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, ExitNotModified, ExitCode(exitError(ExitNotModified, "not modified", assert.AnError)))
	assert.Equal(t, 42, ExitCode(fmt.Errorf("wrapped: %w", exitError(42, "x", assert.AnError))))
	assert.Equal(t, exitGeneralFailure, ExitCode(errors.New("plain")))
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: "Error: boom\n"},
		{
			name: "unlogged exit error",
			err:  exitError(40, "Invalid arguments", errors.New("bad flag")),
			want: "Error: Invalid arguments: bad flag (exit code 40)\n",
		},
		{name: "logged exit error", err: loggedExitError(51, "Redirect rules not found", assert.AnError), want: ""},
		{name: "wrapped logged exit error", err: fmt.Errorf("run: %w", loggedExitError(1, "x", assert.AnError)), want: ""},
		{name: "not modified", err: exitError(ExitNotModified, "Redirect rules not modified", assert.AnError), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Report(&buf, tt.err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
