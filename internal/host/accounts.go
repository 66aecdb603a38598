// SPDX-License-Identifier: MPL-2.0

package host

import (
	"context"
	"errors"
	"fmt"
	"os/user"
	"strconv"
)

// ErrAccountNotFound is returned by Lookup when the account does not exist.
var ErrAccountNotFound = errors.New("account not found")

type (
	// Account describes a resolved host account.
	Account struct {
		Name string
		UID  int
		GID  int
	}

	// Accounts covers the user-database operations the installer performs.
	Accounts interface {
		// Lookup resolves an account by name. Absence is reported via
		// ErrAccountNotFound, never by a nil Account.
		Lookup(name string) (*Account, error)

		// CreateSystemAccount creates a system account with no login shell
		// and no home directory. Callers must check existence first; an
		// existing account is never modified.
		CreateSystemAccount(ctx context.Context, name string) error
	}

	// SystemAccounts implements Accounts against the host user database.
	SystemAccounts struct {
		runner Runner
	}
)

// NewSystemAccounts creates an Accounts backed by os/user and useradd.
func NewSystemAccounts(runner Runner) *SystemAccounts {
	return &SystemAccounts{runner: runner}
}

// Lookup resolves an account by name via the host user database.
func (a *SystemAccounts) Lookup(name string) (*Account, error) {
	u, err := user.Lookup(name)
	if err != nil {
		var unknown user.UnknownUserError
		if errors.As(err, &unknown) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, name)
		}
		return nil, fmt.Errorf("failed to look up account %s: %w", name, err)
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return nil, fmt.Errorf("account %s has non-numeric uid %q: %w", name, u.Uid, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return nil, fmt.Errorf("account %s has non-numeric gid %q: %w", name, u.Gid, err)
	}

	return &Account{Name: u.Username, UID: uid, GID: gid}, nil
}

// CreateSystemAccount creates a system account with no login shell and no
// home directory.
func (a *SystemAccounts) CreateSystemAccount(ctx context.Context, name string) error {
	res, err := a.runner.Run(ctx, CommandSpec{
		Path: "useradd",
		Args: []string{"-r", "-M", "-s", "/usr/sbin/nologin", name},
	})
	if err != nil {
		return err
	}
	if exitErr := res.ExitError(); exitErr != nil {
		return fmt.Errorf("useradd %s: %w", name, exitErr)
	}
	return nil
}
