// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"fmt"

	"reconprov/internal/config"
)

type (
	// Inputs are the operator-supplied values for one provisioning run.
	// Empty Account and Workdir resolve to the configured defaults.
	Inputs struct {
		// Token is the bot credential written to the env file. Required.
		Token string
		// Allowlist is the comma-separated set of permitted chat IDs.
		// Empty means the bot applies no restriction.
		Allowlist string
		// Account is the service account the bot runs as.
		Account string
		// Workdir is the installation directory on the host.
		Workdir string
	}

	// Plan is the fully resolved set of names and paths for one run.
	// Every step reads from the same Plan, so the working directory,
	// venv, env file, and account cannot drift between steps.
	Plan struct {
		Account   string
		Token     string
		Allowlist string

		// SourceDir is the tree mirrored into Workdir.
		SourceDir string
		Workdir   string

		Venv         string
		VenvPython   string
		VenvPip      string
		Requirements string
		EntryPoint   string

		EnvFile  string
		UnitName string
		UnitPath string

		// Python is the host interpreter that seeds the venv.
		Python string
	}
)

// BuildPlan resolves inputs against the installer configuration. Empty
// optional inputs fall back to configured defaults; the account name and
// working directory are validated before any host mutation happens.
func BuildPlan(cfg *config.Config, in Inputs, sourceDir string) (*Plan, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if in.Token == "" {
		return nil, errors.New("bot token must not be empty")
	}
	if sourceDir == "" {
		return nil, errors.New("source directory must not be empty")
	}

	resolved := *cfg
	if in.Account != "" {
		resolved.Account = config.ServiceAccount(in.Account)
	}
	if in.Workdir != "" {
		resolved.Workdir = config.InstallPath(in.Workdir)
	}

	if ok, errs := resolved.Account.IsValid(); !ok {
		return nil, fmt.Errorf("service account %q: %w", resolved.Account, errors.Join(errs...))
	}
	if ok, errs := resolved.Workdir.IsValid(); !ok {
		return nil, fmt.Errorf("working directory %q: %w", resolved.Workdir, errors.Join(errs...))
	}

	return &Plan{
		Account:   resolved.Account.String(),
		Token:     in.Token,
		Allowlist: in.Allowlist,

		SourceDir: sourceDir,
		Workdir:   resolved.Workdir.String(),

		Venv:         resolved.Venv(),
		VenvPython:   resolved.VenvPython(),
		VenvPip:      resolved.VenvPip(),
		Requirements: resolved.Requirements(),
		EntryPoint:   resolved.EntryPoint(),

		EnvFile:  resolved.EnvFile.String(),
		UnitName: resolved.ServiceName.String(),
		UnitPath: resolved.UnitPath(),

		Python: resolved.Python.String(),
	}, nil
}
