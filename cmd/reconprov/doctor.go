// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"reconprov/internal/tools"

	"github.com/spf13/cobra"
)

// newDoctorCommand creates the `reconprov doctor` command.
func newDoctorCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check provisioning prerequisites and the bot's recon tools",
		Long: `Check provisioning prerequisites and the bot's recon tools.

Probes PATH for the programs the installer needs (python3, sudo,
useradd, systemctl) and for the recon tools the bot shells out to at
runtime (subfinder, nmap, feroxbuster, and friends). Missing recon
tools don't block an install; the matching bot commands just fail until
the tool is added.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDoctor(app)
		},
	}
}

func runDoctor(app *App) error {
	results, err := tools.Check(app.Host.Runner)
	if err != nil {
		return err
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("reconprov doctor"))

	var lastKind string
	for _, res := range results {
		if res.Tool.Kind != lastKind {
			lastKind = res.Tool.Kind
			fmt.Fprintln(app.stdout)
			fmt.Fprintln(app.stdout, SubtitleStyle.Render(kindHeading(lastKind)))
		}

		if res.Found {
			fmt.Fprintf(app.stdout, "%s %-12s %s\n",
				SuccessStyle.Render("✓"), res.Tool.Name, VerboseStyle.Render(res.Path))
			continue
		}
		fmt.Fprintf(app.stdout, "%s %-12s %s\n",
			ErrorStyle.Render("✗"), res.Tool.Name, SubtitleStyle.Render(res.Tool.Purpose))
	}

	missingPrereqs := tools.Missing(results, tools.KindPrerequisite)
	missingRecon := tools.Missing(results, tools.KindRecon)

	fmt.Fprintln(app.stdout)
	switch {
	case len(missingPrereqs) > 0:
		fmt.Fprintln(app.stdout, ErrorStyle.Render(
			fmt.Sprintf("%d missing prerequisite(s); install will fail without them", len(missingPrereqs))))
		return &ExitError{Code: 1, Err: fmt.Errorf("%d missing prerequisites", len(missingPrereqs))}
	case len(missingRecon) > 0:
		fmt.Fprintln(app.stdout, WarningStyle.Render(
			fmt.Sprintf("%d recon tool(s) missing; the matching bot commands will fail", len(missingRecon))))
	default:
		fmt.Fprintln(app.stdout, SuccessStyle.Render("all tools present"))
	}
	return nil
}

func kindHeading(kind string) string {
	switch kind {
	case tools.KindRecon:
		return "Recon tools (used by the bot at runtime)"
	case tools.KindPrerequisite:
		return "Provisioning prerequisites"
	default:
		return kind
	}
}
