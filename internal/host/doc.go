// SPDX-License-Identifier: MPL-2.0

// Package host wraps the pieces of the operating system the installer
// touches: command execution, the filesystem, the account database, and
// systemd. Each capability is an interface with one real implementation,
// so the provisioning sequence can be exercised in tests without mutating
// the host.
//
// The real implementations shell out the way an operator would (useradd,
// systemctl, sudo -u) and surface the underlying command failures verbatim.
package host
