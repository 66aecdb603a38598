// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed runbook.md
var runbookMarkdown string

// newDocsCommand creates the `reconprov docs` command.
func newDocsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:          "docs",
		Short:        "Render the operator runbook in the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDocs(app)
		},
	}
}

func runDocs(app *App) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to build markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(runbookMarkdown)
	if err != nil {
		return fmt.Errorf("failed to render runbook: %w", err)
	}

	fmt.Fprint(app.stdout, rendered)
	return nil
}
