// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for reconprov.
//
// This package implements the Cobra command hierarchy: install runs the
// provisioning sequence, status and doctor report host state without
// touching it, verify checks a bot credential against the Telegram Bot
// API, docs renders the operator runbook, and config manages the
// installer configuration file.
package cmd
