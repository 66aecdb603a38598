// SPDX-License-Identifier: MPL-2.0

// Package provision turns operator inputs into a running telegram-recon-bot
// service. A run resolves a Plan once, then executes a fixed sequence of
// host mutations: working directory, source sync, service account, venv,
// dependencies, env file, ownership, systemd unit, activation, status.
//
// The sequence is strictly linear with no rollback. Most steps abort the
// run on failure; the venv creation and the final status query are
// tolerated and only produce warnings.
package provision
