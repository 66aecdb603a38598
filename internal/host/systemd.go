// SPDX-License-Identifier: MPL-2.0

package host

import (
	"context"
	"fmt"
)

type (
	// ServiceManager covers the systemd operations the installer performs.
	ServiceManager interface {
		// DaemonReload reloads the unit database after unit file changes.
		DaemonReload(ctx context.Context) error

		// Enable marks the unit for boot-time start.
		Enable(ctx context.Context, unit string) error

		// Start starts the unit immediately.
		Start(ctx context.Context, unit string) error

		// Status returns the operator-facing `systemctl status` output.
		// A stopped or failed unit is still a successful query; the error
		// covers only the inability to ask.
		Status(ctx context.Context, unit string) (string, error)
	}

	// SystemdManager implements ServiceManager by shelling out to systemctl.
	SystemdManager struct {
		runner Runner
		// ptyStatus is swapped out in tests; defaults to statusThroughPty.
		ptyStatus func(ctx context.Context, unit string) (string, error)
	}
)

// NewSystemdManager creates a ServiceManager backed by systemctl.
func NewSystemdManager(runner Runner) *SystemdManager {
	return &SystemdManager{
		runner:    runner,
		ptyStatus: statusThroughPty,
	}
}

// DaemonReload reloads the systemd unit database.
func (m *SystemdManager) DaemonReload(ctx context.Context) error {
	return m.systemctl(ctx, "daemon-reload")
}

// Enable marks the unit for boot-time start.
func (m *SystemdManager) Enable(ctx context.Context, unit string) error {
	return m.systemctl(ctx, "enable", unit)
}

// Start starts the unit immediately.
func (m *SystemdManager) Start(ctx context.Context, unit string) error {
	return m.systemctl(ctx, "start", unit)
}

func (m *SystemdManager) systemctl(ctx context.Context, args ...string) error {
	res, err := m.runner.Run(ctx, CommandSpec{Path: "systemctl", Args: args})
	if err != nil {
		return err
	}
	if exitErr := res.ExitError(); exitErr != nil {
		return fmt.Errorf("systemctl %s: %w", args[0], exitErr)
	}
	return nil
}

// Status queries `systemctl status` for the unit. The command runs under a
// pseudo-terminal so systemd produces the same excerpt an operator would see
// in an interactive shell; see status_unix.go. systemctl exits non-zero for
// inactive or failed units, which is still a valid answer here.
func (m *SystemdManager) Status(ctx context.Context, unit string) (string, error) {
	out, err := m.ptyStatus(ctx, unit)
	if err == nil {
		return out, nil
	}

	// No pty (container, CI): plain capture keeps the query alive
	res, runErr := m.runner.Run(ctx, CommandSpec{
		Path: "systemctl",
		Args: statusArgs(unit),
	})
	if runErr != nil {
		return "", fmt.Errorf("failed to query status of %s: %w", unit, runErr)
	}
	if res.Output != "" {
		return res.Output, nil
	}
	return res.ErrOutput, nil
}

// statusArgs builds the systemctl status argv. --no-pager keeps systemctl
// from blocking on a pager when attached to the pty.
func statusArgs(unit string) []string {
	return []string{"status", unit, "--no-pager"}
}
