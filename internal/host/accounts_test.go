// SPDX-License-Identifier: MPL-2.0

package host

import (
	"context"
	"errors"
	"os/user"
	"strings"
	"testing"
)

// mockRunner implements Runner for testing without touching the host.
type mockRunner struct {
	// result is returned from every Run call
	result *CommandResult
	// err is returned from every Run call
	err error

	// runCalls records Run invocations for assertion
	runCalls []CommandSpec
	// lookPaths maps names LookPath resolves; absent names fail
	lookPaths map[string]string
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		result:    &CommandResult{},
		lookPaths: make(map[string]string),
	}
}

func (m *mockRunner) Run(_ context.Context, spec CommandSpec) (*CommandResult, error) {
	m.runCalls = append(m.runCalls, spec)
	return m.result, m.err
}

func (m *mockRunner) LookPath(name string) (string, error) {
	if path, ok := m.lookPaths[name]; ok {
		return path, nil
	}
	return "", errors.New("not found: " + name)
}

func TestSystemAccounts_Lookup_CurrentUser(t *testing.T) {
	t.Parallel()

	current, err := user.Current()
	if err != nil {
		t.Skipf("cannot resolve current user: %v", err)
	}

	accounts := NewSystemAccounts(newMockRunner())
	acct, err := accounts.Lookup(current.Username)
	if err != nil {
		t.Fatalf("Lookup(%s) error = %v", current.Username, err)
	}

	if acct.Name != current.Username {
		t.Errorf("Name = %s, want %s", acct.Name, current.Username)
	}
	if acct.UID < 0 || acct.GID < 0 {
		t.Errorf("resolved ids = %d:%d", acct.UID, acct.GID)
	}
}

func TestSystemAccounts_Lookup_Missing(t *testing.T) {
	t.Parallel()

	accounts := NewSystemAccounts(newMockRunner())
	_, err := accounts.Lookup("reconprov-no-such-account")
	if err == nil {
		t.Fatal("expected error for missing account")
	}
	if !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("error should wrap ErrAccountNotFound, got: %v", err)
	}
}

func TestSystemAccounts_CreateSystemAccount_Argv(t *testing.T) {
	t.Parallel()

	runner := newMockRunner()
	accounts := NewSystemAccounts(runner)

	if err := accounts.CreateSystemAccount(context.Background(), "botuser"); err != nil {
		t.Fatalf("CreateSystemAccount() error = %v", err)
	}

	if len(runner.runCalls) != 1 {
		t.Fatalf("expected 1 command, got %d", len(runner.runCalls))
	}
	spec := runner.runCalls[0]
	if spec.Path != "useradd" {
		t.Errorf("Path = %s, want useradd", spec.Path)
	}
	want := "-r -M -s /usr/sbin/nologin botuser"
	if got := strings.Join(spec.Args, " "); got != want {
		t.Errorf("Args = %q, want %q", got, want)
	}
	if spec.RunAs != "" {
		t.Errorf("useradd must run elevated, got RunAs=%q", spec.RunAs)
	}
}

func TestSystemAccounts_CreateSystemAccount_Failure(t *testing.T) {
	t.Parallel()

	runner := newMockRunner()
	runner.result = &CommandResult{ExitCode: 9, ErrOutput: "useradd: UID range exhausted"}
	accounts := NewSystemAccounts(runner)

	err := accounts.CreateSystemAccount(context.Background(), "botuser")
	if err == nil {
		t.Fatal("expected error for useradd failure")
	}
	if !strings.Contains(err.Error(), "exit status 9") {
		t.Errorf("error should carry the exit status, got: %v", err)
	}
	if !strings.Contains(err.Error(), "UID range exhausted") {
		t.Errorf("error should surface stderr, got: %v", err)
	}
}
