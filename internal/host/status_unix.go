// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package host

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// statusThroughPty runs `systemctl status` attached to a pseudo-terminal and
// returns everything it printed. Reading the pty master raises EIO once the
// child exits; that is the normal end of output, not a failure.
func statusThroughPty(ctx context.Context, unit string) (string, error) {
	cmd := exec.CommandContext(ctx, "systemctl", statusArgs(unit)...)

	f, err := pty.Start(cmd)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, syscall.EIO) {
		_ = cmd.Wait()
		return "", err
	}

	// Exit status 3 means inactive; any answer is a successful query
	_ = cmd.Wait()

	return buf.String(), nil
}
