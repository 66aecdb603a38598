// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"reconprov/internal/prompt"

	"github.com/spf13/cobra"
)

// newVerifyCommand creates the `reconprov verify` command.
func newVerifyCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check a bot credential against the Telegram Bot API",
		Long: `Check a bot credential against the Telegram Bot API.

Prompts for the token the same way install does and calls getMe.
Install itself never validates the credential, so run this before
provisioning when in doubt. The token is not stored anywhere.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd.Context(), app)
		},
	}
}

func runVerify(ctx context.Context, app *App) error {
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
		return &ExitError{Code: 1, Err: err}
	}

	identity, err := app.Verifier.Verify(ctx, token)
	if err != nil {
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Credential check failed: ")+err.Error())
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprintln(app.stdout, SuccessStyle.Render("Credential accepted: ")+CmdStyle.Render(identity.String()))
	return nil
}
