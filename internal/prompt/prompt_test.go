// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAskReturnsTrimmedAnswer(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	a := NewWithStreams(strings.NewReader("  botuser  \n"), &out)

	got, err := a.Ask(Question{Title: "Service account"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "botuser" {
		t.Errorf("Ask() = %q, want %q", got, "botuser")
	}
	if !strings.Contains(out.String(), "Service account") {
		t.Errorf("prompt output missing title, got %q", out.String())
	}
}

func TestAskEmptyInputUsesDefault(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	a := NewWithStreams(strings.NewReader("\n"), &out)

	got, err := a.Ask(Question{Title: "Working directory", Default: "/opt/telegram-recon-bot"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "/opt/telegram-recon-bot" {
		t.Errorf("Ask() = %q, want default", got)
	}
	if !strings.Contains(out.String(), "[/opt/telegram-recon-bot]") {
		t.Errorf("prompt output missing default hint, got %q", out.String())
	}
}

func TestAskRetriesUntilValid(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	a := NewWithStreams(strings.NewReader("Root\nbotuser\n"), &out)

	validate := func(v string) error {
		if v != strings.ToLower(v) {
			return errors.New("must be lowercase")
		}
		return nil
	}

	got, err := a.Ask(Question{Title: "Service account", Validate: validate})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "botuser" {
		t.Errorf("Ask() = %q, want %q", got, "botuser")
	}
	if !strings.Contains(out.String(), "must be lowercase") {
		t.Errorf("validation message not shown, got %q", out.String())
	}
}

func TestAskGivesUpAfterRepeatedRejections(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	a := NewWithStreams(strings.NewReader("a\nb\nc\nd\n"), &out)

	wantErr := errors.New("never good enough")
	_, err := a.Ask(Question{
		Title:    "Service account",
		Validate: func(string) error { return wantErr },
	})
	if err == nil {
		t.Fatal("Ask() error = nil, want failure after exhausted attempts")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("Ask() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestAskClosedInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	a := NewWithStreams(strings.NewReader(""), &out)

	_, err := a.Ask(Question{Title: "Bot token"})
	if !errors.Is(err, ErrInputClosed) {
		t.Errorf("Ask() error = %v, want %v", err, ErrInputClosed)
	}
}

func TestAskFinalLineWithoutNewline(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	a := NewWithStreams(strings.NewReader("10.0.0.0/24"), &out)

	got, err := a.Ask(Question{Title: "Allowlist"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "10.0.0.0/24" {
		t.Errorf("Ask() = %q, want %q", got, "10.0.0.0/24")
	}
}

func TestAskSecretWithoutTerminalReadsPlainLine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	a := NewWithStreams(strings.NewReader("123456:ABCDEF\n"), &out)

	got, err := a.Ask(Question{Title: "Bot token", Secret: true, Default: "hidden-default"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "123456:ABCDEF" {
		t.Errorf("Ask() = %q, want token", got)
	}
	// Secrets never advertise a default inline.
	if strings.Contains(out.String(), "hidden-default") {
		t.Errorf("secret prompt leaked default, got %q", out.String())
	}
}

func TestAskDescriptionRenderedOnce(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	a := NewWithStreams(strings.NewReader("x\ny\n"), &out)

	validate := func(v string) error {
		if v == "x" {
			return fmt.Errorf("not %q", v)
		}
		return nil
	}
	if _, err := a.Ask(Question{
		Title:       "Allowlist",
		Description: "Comma-separated chat IDs permitted to issue commands.",
		Validate:    validate,
	}); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got := strings.Count(out.String(), "Comma-separated"); got != 1 {
		t.Errorf("description rendered %d times, want 1", got)
	}
}
