// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"reconprov/internal/config"
	"reconprov/internal/envfile"
	"reconprov/internal/host"
	"reconprov/internal/unit"
)

type (
	// Host bundles the capabilities the installer mutates. Tests inject
	// fakes; production code uses DefaultHost.
	Host struct {
		Fs       host.Filesystem
		Accounts host.Accounts
		Services host.ServiceManager
		Runner   host.Runner
	}

	// Installer executes the provisioning sequence against a Host.
	Installer struct {
		host   Host
		config *config.Config
		logger *log.Logger
	}

	// Option is a functional option for configuring an Installer.
	Option func(*Installer)

	// Result contains the outcome of a successful provisioning run.
	Result struct {
		// RunID correlates the run's log lines.
		RunID uuid.UUID

		// Plan is the resolved set of names and paths the run applied.
		Plan *Plan

		// StatusOutput is the captured service status text, empty when
		// the status query failed.
		StatusOutput string

		// Warnings lists tolerated step failures.
		Warnings []string
	}
)

// DefaultHost wires the real host capabilities over one shared runner.
func DefaultHost() Host {
	runner := host.NewExecRunner()
	return Host{
		Fs:       host.NewOSFilesystem(),
		Accounts: host.NewSystemAccounts(runner),
		Services: host.NewSystemdManager(runner),
		Runner:   runner,
	}
}

// WithLogger returns an Option that sets the installer's logger.
func WithLogger(logger *log.Logger) Option {
	return func(i *Installer) {
		i.logger = logger
	}
}

// NewInstaller creates an Installer over the given host capabilities.
// A nil config means the documented defaults.
func NewInstaller(h Host, cfg *config.Config, opts ...Option) *Installer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	i := &Installer{
		host:   h,
		config: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "provision"}),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run resolves the plan and executes the provisioning sequence. sourceDir
// is the tree mirrored into the working directory, normally the directory
// the installer was invoked from. The run aborts on the first non-tolerant
// step failure; there is no rollback, so an aborted run leaves the host
// partially provisioned.
func (i *Installer) Run(ctx context.Context, in Inputs, sourceDir string) (*Result, error) {
	plan, err := BuildPlan(i.config, in, sourceDir)
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.New(), Plan: plan}
	runLog := i.logger.With("run", shortID(res.RunID))
	runLog.Info("starting provisioning run",
		"account", plan.Account,
		"workdir", plan.Workdir,
		"unit", plan.UnitName)

	warnings, err := i.runSteps(ctx, i.steps(plan, res))
	res.Warnings = warnings
	if err != nil {
		return nil, err
	}

	runLog.Info("provisioning run complete", "warnings", len(warnings))
	return res, nil
}

// steps returns the provisioning sequence for plan in execution order.
func (i *Installer) steps(plan *Plan, res *Result) []Step {
	return []Step{
		{
			ID:        "workdir",
			Operation: "create working directory",
			Resource:  plan.Workdir,
			run: func(context.Context) error {
				return i.host.Fs.MkdirAll(plan.Workdir, 0o755)
			},
		},
		{
			ID:        "sync",
			Operation: "mirror source tree into working directory",
			Resource:  plan.Workdir,
			run: func(context.Context) error {
				return i.host.Fs.SyncTree(plan.SourceDir, plan.Workdir, []string{".git"})
			},
		},
		{
			ID:        "account",
			Operation: "provision service account",
			Resource:  plan.Account,
			run:       i.ensureAccount(plan),
		},
		{
			ID:        "venv",
			Operation: "create Python virtual environment",
			Resource:  plan.Venv,
			Tolerant:  true,
			run:       i.createVenv(plan),
		},
		{
			ID:        "pip",
			Operation: "install Python dependencies",
			Resource:  plan.Requirements,
			run:       i.installRequirements(plan),
		},
		{
			ID:        "envfile",
			Operation: "write environment file",
			Resource:  plan.EnvFile,
			run:       i.writeEnvFile(plan),
		},
		{
			ID:        "chown",
			Operation: "transfer working directory ownership",
			Resource:  plan.Workdir,
			run:       i.chownWorkdir(plan),
		},
		{
			ID:        "unit",
			Operation: "write systemd unit",
			Resource:  plan.UnitPath,
			run:       i.writeUnit(plan),
		},
		{
			ID:        "patch-user",
			Operation: "patch service account into unit",
			Resource:  plan.UnitPath,
			run:       i.patchUnitAccount(plan),
		},
		{
			ID:        "activate",
			Operation: "enable and start service",
			Resource:  plan.UnitName,
			run:       i.activate(plan),
		},
		{
			ID:        "status",
			Operation: "query service status",
			Resource:  plan.UnitName,
			Tolerant:  true,
			run: func(ctx context.Context) error {
				out, err := i.host.Services.Status(ctx, plan.UnitName)
				if err != nil {
					return err
				}
				res.StatusOutput = out
				return nil
			},
		},
	}
}

// ensureAccount creates the service account unless it already exists.
// An existing account is never modified.
func (i *Installer) ensureAccount(plan *Plan) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := i.host.Accounts.Lookup(plan.Account)
		if err == nil {
			i.logger.Debug("account exists, leaving it untouched", "account", plan.Account)
			return nil
		}
		if !errors.Is(err, host.ErrAccountNotFound) {
			return err
		}
		return i.host.Accounts.CreateSystemAccount(ctx, plan.Account)
	}
}

// createVenv seeds the virtual environment as the service account when the
// venv directory is absent.
func (i *Installer) createVenv(plan *Plan) func(context.Context) error {
	return func(ctx context.Context) error {
		exists, err := i.host.Fs.Exists(plan.Venv)
		if err != nil {
			return err
		}
		if exists {
			i.logger.Debug("venv already present", "path", plan.Venv)
			return nil
		}
		return i.runAs(ctx, plan.Account, plan.Workdir, plan.Python, "-m", "venv", plan.Venv)
	}
}

// installRequirements upgrades pip and installs the bot's requirements
// into the venv, both de-escalated to the service account.
func (i *Installer) installRequirements(plan *Plan) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := i.runAs(ctx, plan.Account, plan.Workdir, plan.VenvPip, "install", "--upgrade", "pip"); err != nil {
			return fmt.Errorf("upgrade pip: %w", err)
		}
		if err := i.runAs(ctx, plan.Account, plan.Workdir, plan.VenvPip, "install", "-r", plan.Requirements); err != nil {
			return fmt.Errorf("install requirements: %w", err)
		}
		return nil
	}
}

// writeEnvFile writes the bot's environment file wholesale. Prior content
// is never merged.
func (i *Installer) writeEnvFile(plan *Plan) func(context.Context) error {
	return func(context.Context) error {
		values := envfile.New(plan.Token, plan.Allowlist, plan.Workdir, plan.Venv, plan.Account)
		content, err := values.Encode()
		if err != nil {
			return err
		}
		// 0600: the file carries the bot credential.
		return i.host.Fs.WriteFile(plan.EnvFile, []byte(content), 0o600)
	}
}

func (i *Installer) chownWorkdir(plan *Plan) func(context.Context) error {
	return func(context.Context) error {
		account, err := i.host.Accounts.Lookup(plan.Account)
		if err != nil {
			return err
		}
		return i.host.Fs.ChownTree(plan.Workdir, account.UID, account.GID)
	}
}

// writeUnit renders the unit template with the plan's paths resolved. The
// account placeholder stays in place for the patch step.
func (i *Installer) writeUnit(plan *Plan) func(context.Context) error {
	return func(context.Context) error {
		rendered := unit.Render(unit.Params{
			Workdir: plan.Workdir,
			Venv:    plan.Venv,
			EnvFile: plan.EnvFile,
		})
		return i.host.Fs.WriteFile(plan.UnitPath, []byte(rendered), 0o644)
	}
}

// patchUnitAccount rewrites the written unit file with the account
// placeholder replaced by the resolved account name.
func (i *Installer) patchUnitAccount(plan *Plan) func(context.Context) error {
	return func(context.Context) error {
		data, err := i.host.Fs.ReadFile(plan.UnitPath)
		if err != nil {
			return err
		}
		patched := unit.PatchAccount(string(data), plan.Account)
		return i.host.Fs.WriteFile(plan.UnitPath, []byte(patched), 0o644)
	}
}

func (i *Installer) activate(plan *Plan) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := i.host.Services.DaemonReload(ctx); err != nil {
			return err
		}
		if err := i.host.Services.Enable(ctx, plan.UnitName); err != nil {
			return err
		}
		return i.host.Services.Start(ctx, plan.UnitName)
	}
}

// runAs executes a command de-escalated to the service account and
// promotes a non-zero exit to an error.
func (i *Installer) runAs(ctx context.Context, account, dir, path string, args ...string) error {
	res, err := i.host.Runner.Run(ctx, host.CommandSpec{
		Path:  path,
		Args:  args,
		Dir:   dir,
		RunAs: account,
	})
	if err != nil {
		return err
	}
	if !res.Successful() {
		return res.ExitError()
	}
	return nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
