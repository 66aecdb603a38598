// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"reconprov/internal/config"
	"reconprov/internal/prompt"
	"reconprov/internal/provision"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// newInstallCommand creates the `reconprov install` command.
func newInstallCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Provision the host and start the service",
		Long: `Provision the host and start the service.

Prompts for the bot credential, the allowlist, the service account, and
the working directory, then runs the provisioning sequence: working
directory, source mirror, service account, venv, dependencies, env file,
ownership, systemd unit, activation. Run it from the telegram-recon-bot
checkout, as root.

Re-running is safe: the sequence re-applies files wholesale and never
modifies an existing account.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd.Context(), app)
		},
	}
}

func runInstall(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	inputs, err := collectInstallInputs(app, cfg)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	sourceDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve source directory: %w", err)
	}

	logger := log.NewWithOptions(app.stderr, log.Options{Prefix: "provision"})
	if verbose || cfg.UI.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	installer := provision.NewInstaller(app.Host, cfg, provision.WithLogger(logger))
	res, err := installer.Run(ctx, inputs, sourceDir)
	if err != nil {
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Provisioning failed: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, SuccessStyle.Render("Service provisioned: ")+CmdStyle.Render(res.Plan.UnitName))
	for _, warning := range res.Warnings {
		fmt.Fprintln(app.stdout, WarningStyle.Render("warning: ")+warning)
	}
	if res.StatusOutput != "" {
		fmt.Fprintln(app.stdout)
		fmt.Fprintln(app.stdout, res.StatusOutput)
	}
	return nil
}

// collectInstallInputs asks the four provisioning questions. Defaults come
// from the loaded configuration; validation happens at the prompt so the
// operator can correct a value without restarting.
func collectInstallInputs(app *App, cfg *config.Config) (provision.Inputs, error) {
	token, err := app.Asker.Ask(prompt.Question{
		Title:       "Bot token",
		Description: "Telegram bot credential from @BotFather. Input is hidden.",
		Secret:      true,
		Validate: func(v string) error {
			if v == "" {
				return errors.New("the bot token is required")
			}
			return nil
		},
	})
	if err != nil {
		return provision.Inputs{}, err
	}

	allowlist, err := app.Asker.Ask(prompt.Question{
		Title:       "Allowlist",
		Description: "Comma-separated Telegram user IDs allowed to command the bot. Empty allows everyone.",
	})
	if err != nil {
		return provision.Inputs{}, err
	}

	account, err := app.Asker.Ask(prompt.Question{
		Title:   "Service account",
		Default: cfg.Account.String(),
		Validate: func(v string) error {
			if ok, errs := config.ServiceAccount(v).IsValid(); !ok {
				return errors.Join(errs...)
			}
			return nil
		},
	})
	if err != nil {
		return provision.Inputs{}, err
	}

	workdir, err := app.Asker.Ask(prompt.Question{
		Title:   "Working directory",
		Default: cfg.Workdir.String(),
		Validate: func(v string) error {
			if ok, errs := config.InstallPath(v).IsValid(); !ok {
				return errors.Join(errs...)
			}
			return nil
		},
	})
	if err != nil {
		return provision.Inputs{}, err
	}

	return provision.Inputs{
		Token:     token,
		Allowlist: allowlist,
		Account:   account,
		Workdir:   workdir,
	}, nil
}
