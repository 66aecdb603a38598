// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const maxAttempts = 3

// ErrInputClosed indicates the input stream ended before a value was read.
var ErrInputClosed = errors.New("input stream closed")

type (
	// Question describes a single value to collect from the operator.
	Question struct {
		// Title is the label shown before the cursor.
		Title string
		// Description is an optional hint rendered under the title.
		Description string
		// Default is returned when the operator submits an empty line.
		// It is shown alongside the title.
		Default string
		// Secret hides the typed value when the input is a terminal.
		Secret bool
		// Validate rejects unacceptable values. The question is asked
		// again, up to a small number of attempts, when it returns an
		// error.
		Validate func(string) error
	}

	// Asker collects answers to questions.
	Asker interface {
		Ask(q Question) (string, error)
	}

	// TerminalAsker reads answers line by line from an input stream and
	// writes prompts to an output stream. When the input is the process
	// terminal, secret answers are read with echo disabled.
	TerminalAsker struct {
		in     *bufio.Reader
		out    io.Writer
		termFd int

		titleStyle lipgloss.Style
		hintStyle  lipgloss.Style
		errStyle   lipgloss.Style
	}
)

// New returns an asker bound to the process stdin and stderr. Prompts go
// to stderr so captured stdout stays clean.
func New() *TerminalAsker {
	a := NewWithStreams(os.Stdin, os.Stderr)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		a.termFd = fd
	}
	return a
}

// NewWithStreams returns an asker over arbitrary streams. Secret questions
// fall back to plain line reads because no terminal is attached.
func NewWithStreams(in io.Reader, out io.Writer) *TerminalAsker {
	return &TerminalAsker{
		in:     bufio.NewReader(in),
		out:    out,
		termFd: -1,

		titleStyle: lipgloss.NewStyle().Bold(true),
		hintStyle:  lipgloss.NewStyle().Faint(true),
		errStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Ask renders the question and returns the operator's answer. Empty input
// resolves to the default. Validation failures are reported and the
// question is asked again; after too many rejected answers the last
// validation error is returned.
func (a *TerminalAsker) Ask(q Question) (string, error) {
	if q.Description != "" {
		fmt.Fprintln(a.out, a.hintStyle.Render(q.Description))
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprint(a.out, a.renderTitle(q))

		answer, err := a.readAnswer(q.Secret)
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = q.Default
		}

		if q.Validate != nil {
			if err := q.Validate(answer); err != nil {
				lastErr = err
				fmt.Fprintln(a.out, a.errStyle.Render(fmt.Sprintf("invalid value: %v", err)))
				continue
			}
		}
		return answer, nil
	}
	return "", fmt.Errorf("no acceptable answer for %q: %w", q.Title, lastErr)
}

func (a *TerminalAsker) renderTitle(q Question) string {
	title := a.titleStyle.Render(q.Title)
	if q.Default != "" && !q.Secret {
		title += a.hintStyle.Render(fmt.Sprintf(" [%s]", q.Default))
	}
	return title + ": "
}

func (a *TerminalAsker) readAnswer(secret bool) (string, error) {
	if secret && a.termFd >= 0 {
		raw, err := term.ReadPassword(a.termFd)
		// ReadPassword swallows the operator's newline.
		fmt.Fprintln(a.out)
		if err != nil {
			return "", fmt.Errorf("read hidden input: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
