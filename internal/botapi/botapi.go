// SPDX-License-Identifier: MPL-2.0

// Package botapi answers one question: which bot account does a credential
// authenticate as. Provisioning itself never validates the credential; this
// lives behind a separate command the operator runs on demand.
package botapi

import (
	"context"
	"fmt"

	"github.com/NicoNex/echotron/v3"
)

type (
	// Identity describes the bot account a credential resolves to.
	Identity struct {
		ID       int64
		Username string
		Name     string
	}

	// Verifier checks a bot credential against the Telegram Bot API.
	Verifier interface {
		Verify(ctx context.Context, token string) (*Identity, error)
	}

	// TelegramVerifier implements Verifier over the real Bot API.
	TelegramVerifier struct{}
)

var _ Verifier = TelegramVerifier{}

// String renders the identity the way operators reference bots.
func (id *Identity) String() string {
	if id.Username != "" {
		return fmt.Sprintf("@%s (id %d)", id.Username, id.ID)
	}
	return fmt.Sprintf("%s (id %d)", id.Name, id.ID)
}

// Verify calls getMe with the given token. A rejected credential surfaces
// as an error carrying the Bot API's description.
func (TelegramVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	// The underlying client has no context plumbing; honor cancellation
	// up front so a canceled run never opens a connection.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("bot token must not be empty")
	}

	api := echotron.NewAPI(token)
	res, err := api.GetMe()
	if err != nil {
		return nil, fmt.Errorf("query bot identity: %w", err)
	}
	if res.Result == nil {
		return nil, fmt.Errorf("credential rejected: %s", res.Description)
	}

	return &Identity{
		ID:       res.Result.ID,
		Username: res.Result.Username,
		Name:     res.Result.FirstName,
	}, nil
}
