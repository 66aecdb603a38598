// SPDX-License-Identifier: MPL-2.0

package host

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Runner executes host commands.
type Runner interface {
	// Run executes the command described by spec and captures its output.
	// A non-zero exit is reported in the result, not as an error; the
	// returned error covers spawn failures only (missing binary,
	// canceled context, no de-escalation helper).
	Run(ctx context.Context, spec CommandSpec) (*CommandResult, error)

	// LookPath resolves an executable name against PATH.
	LookPath(name string) (string, error)
}

type (
	// CommandSpec describes a single host command invocation.
	CommandSpec struct {
		// Path is the program to run (name or path; resolved via PATH).
		Path string
		// Args are the program arguments.
		Args []string
		// Dir is the working directory ("" = inherit).
		Dir string
		// Env holds extra KEY=VALUE entries appended to the inherited
		// environment.
		Env []string
		// RunAs de-escalates to the named account via sudo -u, falling
		// back to runuser -u ("" = run as the current identity).
		RunAs string
	}

	// CommandResult holds the captured outcome of a command.
	CommandResult struct {
		// ExitCode is the process exit status.
		ExitCode int
		// Output is the captured stdout.
		Output string
		// ErrOutput is the captured stderr.
		ErrOutput string
	}

	// ExecRunner runs commands on the real host.
	ExecRunner struct {
		logger *log.Logger
	}
)

// NewExecRunner creates a runner that executes commands on the host.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "host",
		}),
	}
}

// Run executes the command and captures stdout/stderr.
func (r *ExecRunner) Run(ctx context.Context, spec CommandSpec) (*CommandResult, error) {
	argv, err := r.resolveArgv(spec)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("exec", "cmd", ShellLine(argv[0], argv[1:]))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	result := &CommandResult{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}

	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("failed to execute %s: %w", argv[0], runErr)
	}

	return result, nil
}

// LookPath resolves an executable name against PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// resolveArgv prepends the de-escalation helper when RunAs is set.
// sudo is preferred; runuser covers minimal hosts without sudo.
func (r *ExecRunner) resolveArgv(spec CommandSpec) ([]string, error) {
	base := append([]string{spec.Path}, spec.Args...)
	if spec.RunAs == "" {
		return base, nil
	}

	if sudo, err := exec.LookPath("sudo"); err == nil {
		return append([]string{sudo, "-u", spec.RunAs, "--"}, base...), nil
	}
	if runuser, err := exec.LookPath("runuser"); err == nil {
		return append([]string{runuser, "-u", spec.RunAs, "--"}, base...), nil
	}

	return nil, fmt.Errorf("cannot run as %s: neither sudo nor runuser found on PATH", spec.RunAs)
}

// Successful reports whether the command exited 0.
func (res *CommandResult) Successful() bool {
	return res.ExitCode == 0
}

// ExitError converts a non-zero exit into an error carrying the exit code
// and the command's diagnostic output verbatim, stderr preferred. Returns
// nil for a zero exit.
func (res *CommandResult) ExitError() error {
	if res.ExitCode == 0 {
		return nil
	}
	detail := strings.TrimSpace(res.ErrOutput)
	if detail == "" {
		detail = strings.TrimSpace(res.Output)
	}
	if detail != "" {
		return fmt.Errorf("exit status %d: %s", res.ExitCode, detail)
	}
	return fmt.Errorf("exit status %d", res.ExitCode)
}
