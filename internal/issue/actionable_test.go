// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name: "operation only",
			err: &ActionableError{
				Operation: "create service account",
			},
			expected: "failed to create service account",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "create service account",
				Resource:  "botuser",
			},
			expected: "failed to create service account: botuser",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "write unit file",
				Cause:     errors.New("permission denied"),
			},
			expected: "failed to write unit file: permission denied",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "write unit file",
				Resource:  "/etc/systemd/system/telegram-recon-bot.service",
				Cause:     errors.New("read-only file system"),
			},
			expected: "failed to write unit file: /etc/systemd/system/telegram-recon-bot.service: read-only file system",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &ActionableError{
		Operation: "test",
		Cause:     cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap() should return the cause error")
	}

	errNoCause := &ActionableError{Operation: "test"}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := &ActionableError{
		Operation: "test",
		Cause:     cause,
	}

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "simple error non-verbose",
			err: &ActionableError{
				Operation: "reload systemd",
			},
			verbose:  false,
			contains: []string{"failed to reload systemd"},
		},
		{
			name: "error with suggestions",
			err: &ActionableError{
				Operation:   "create working directory",
				Resource:    "/opt/telegram-recon-bot",
				Suggestions: []string{"Re-run the installer as root", "Check mount options"},
			},
			verbose: false,
			contains: []string{
				"failed to create working directory",
				"/opt/telegram-recon-bot",
				"• Re-run the installer as root",
				"• Check mount options",
			},
		},
		{
			name: "error chain in verbose mode",
			err: &ActionableError{
				Operation: "enable service",
				Cause:     errors.New("unit not found"),
			},
			verbose: true,
			contains: []string{
				"failed to enable service",
				"Error chain:",
				"1. unit not found",
			},
		},
		{
			name: "no error chain in non-verbose",
			err: &ActionableError{
				Operation: "enable service",
				Cause:     errors.New("unit not found"),
			},
			verbose:  false,
			contains: []string{"failed to enable service: unit not found"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested error chain verbose",
			err: &ActionableError{
				Operation: "install virtualenv",
				Cause: &ActionableError{
					Operation: "run python",
					Cause:     errors.New("executable not found"),
				},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to run python: executable not found",
				"2. executable not found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(tt.verbose)

			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}

			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestActionableError_HasSuggestions(t *testing.T) {
	withSuggestions := &ActionableError{
		Operation:   "test",
		Suggestions: []string{"Try this"},
	}
	if !withSuggestions.HasSuggestions() {
		t.Error("HasSuggestions() should return true when suggestions present")
	}

	withoutSuggestions := &ActionableError{
		Operation: "test",
	}
	if withoutSuggestions.HasSuggestions() {
		t.Error("HasSuggestions() should return false when no suggestions")
	}
}

func TestErrorContext_Build(t *testing.T) {
	ctx := NewErrorContext().
		WithOperation("provision account").
		WithResource("botuser").
		WithSuggestion("Install the useradd binary").
		Wrap(errors.New("exec failed"))

	err := ctx.Build()
	if err == nil {
		t.Fatal("Build() returned nil")
	}
	if err.Operation != "provision account" {
		t.Errorf("Operation = %q, want %q", err.Operation, "provision account")
	}
	if err.Resource != "botuser" {
		t.Errorf("Resource = %q, want %q", err.Resource, "botuser")
	}
	if len(err.Suggestions) != 1 || err.Suggestions[0] != "Install the useradd binary" {
		t.Errorf("Suggestions = %v", err.Suggestions)
	}
	if err.Cause == nil || err.Cause.Error() != "exec failed" {
		t.Errorf("Cause = %v", err.Cause)
	}
}

func TestWrapWithOperation(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapWithOperation(cause, "copy bot sources")

	if err.Operation != "copy bot sources" {
		t.Errorf("Operation = %q, want %q", err.Operation, "copy bot sources")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}

	if WrapWithOperation(nil, "noop") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
}
