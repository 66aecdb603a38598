// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"reconprov/internal/config"
	"reconprov/internal/envfile"
	"reconprov/internal/host"
	"reconprov/internal/unit"

	"github.com/spf13/cobra"
)

// newStatusCommand creates the `reconprov status` command.
func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report what a previous install left on the host",
		Long: `Report what a previous install left on the host.

Checks the service account, the working directory and venv, the
environment file (credential redacted), and the systemd unit, then shows
a service status excerpt. Read-only: nothing on the host is modified.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), app)
		},
	}
}

func runStatus(ctx context.Context, app *App) error {
	cfg := app.configOrDefaults(ctx)

	fmt.Fprintln(app.stdout, TitleStyle.Render("telegram-recon-bot deployment"))
	fmt.Fprintln(app.stdout)

	reportAccount(app.stdout, app.Host.Accounts, cfg)
	reportPath(app.stdout, app.Host.Fs, "working directory", cfg.Workdir.String())
	reportPath(app.stdout, app.Host.Fs, "virtual environment", cfg.Venv())
	reportEnvFile(app.stdout, app.Host.Fs, cfg)
	reportUnit(app.stdout, app.Host.Fs, cfg)

	fmt.Fprintln(app.stdout)
	reportServiceStatus(ctx, app, cfg)
	return nil
}

func reportAccount(w io.Writer, accounts host.Accounts, cfg *config.Config) {
	account, err := accounts.Lookup(cfg.Account.String())
	switch {
	case err == nil:
		printCheck(w, true, fmt.Sprintf("service account %s (uid %d, gid %d)", account.Name, account.UID, account.GID))
	case errors.Is(err, host.ErrAccountNotFound):
		printCheck(w, false, fmt.Sprintf("service account %s not present", cfg.Account))
	default:
		printWarn(w, fmt.Sprintf("service account %s: %v", cfg.Account, err))
	}
}

func reportPath(w io.Writer, fs host.Filesystem, label, path string) {
	exists, err := fs.Exists(path)
	switch {
	case err != nil:
		printWarn(w, fmt.Sprintf("%s %s: %v", label, path, err))
	case exists:
		printCheck(w, true, fmt.Sprintf("%s %s", label, path))
	default:
		printCheck(w, false, fmt.Sprintf("%s %s not present", label, path))
	}
}

func reportEnvFile(w io.Writer, fs host.Filesystem, cfg *config.Config) {
	data, err := fs.ReadFile(cfg.EnvFile.String())
	if err != nil {
		printCheck(w, false, fmt.Sprintf("environment file %s not readable", cfg.EnvFile))
		return
	}

	values, err := envfile.Decode(data)
	if err != nil {
		printWarn(w, fmt.Sprintf("environment file %s: %v", cfg.EnvFile, err))
		return
	}

	printCheck(w, true, fmt.Sprintf("environment file %s", cfg.EnvFile))
	fmt.Fprintf(w, "    token %s, allowlist %s\n",
		CmdStyle.Render(values.RedactedToken()),
		renderAllowlist(values.Allowlist))
	fmt.Fprintf(w, "    command timeout %ds, output ceiling %d bytes\n",
		values.TimeoutCmd, values.MaxBytes)
}

func reportUnit(w io.Writer, fs host.Filesystem, cfg *config.Config) {
	data, err := fs.ReadFile(cfg.UnitPath())
	if err != nil {
		printCheck(w, false, fmt.Sprintf("unit file %s not readable", cfg.UnitPath()))
		return
	}

	if left := unit.Placeholders(string(data)); len(left) != 0 {
		printWarn(w, fmt.Sprintf("unit file %s still carries placeholders %s (incomplete install)",
			cfg.UnitPath(), strings.Join(left, ", ")))
		return
	}
	printCheck(w, true, fmt.Sprintf("unit file %s", cfg.UnitPath()))
}

func reportServiceStatus(ctx context.Context, app *App, cfg *config.Config) {
	out, err := app.Host.Services.Status(ctx, cfg.ServiceName.String())
	if err != nil {
		printWarn(app.stdout, fmt.Sprintf("service status unavailable: %v", err))
		return
	}

	fmt.Fprintln(app.stdout, SubtitleStyle.Render("systemctl status "+cfg.ServiceName.String()))
	fmt.Fprintln(app.stdout, strings.TrimRight(out, "\n"))
}

func renderAllowlist(allowlist string) string {
	if allowlist == "" {
		return SubtitleStyle.Render("(unrestricted)")
	}
	return CmdStyle.Render(allowlist)
}

func printCheck(w io.Writer, ok bool, text string) {
	icon := SuccessStyle.Render("✓")
	if !ok {
		icon = ErrorStyle.Render("✗")
	}
	fmt.Fprintf(w, "%s %s\n", icon, text)
}

func printWarn(w io.Writer, text string) {
	fmt.Fprintf(w, "%s %s\n", WarningStyle.Render("!"), text)
}
