// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"reconprov/internal/botapi"
	"reconprov/internal/config"
	"reconprov/internal/host"
	"reconprov/internal/prompt"
)

// scriptedAsker answers questions from a fixed list, applying defaults and
// validation the same way the terminal asker does.
type scriptedAsker struct {
	answers []string
	asked   []prompt.Question
}

func (a *scriptedAsker) Ask(q prompt.Question) (string, error) {
	idx := len(a.asked)
	a.asked = append(a.asked, q)
	if idx >= len(a.answers) {
		return "", fmt.Errorf("unexpected question %q", q.Title)
	}

	answer := a.answers[idx]
	if answer == "" {
		answer = q.Default
	}
	if q.Validate != nil {
		if err := q.Validate(answer); err != nil {
			return "", fmt.Errorf("scripted answer %q rejected: %w", answer, err)
		}
	}
	return answer, nil
}

// staticConfigProvider returns a fixed configuration.
type staticConfigProvider struct {
	cfg *config.Config
	err error
}

func (p *staticConfigProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.cfg, nil
}

// fakeVerifier records the token it was asked about.
type fakeVerifier struct {
	identity *botapi.Identity
	err      error
	gotToken string
}

func (v *fakeVerifier) Verify(_ context.Context, token string) (*botapi.Identity, error) {
	v.gotToken = token
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

// fakeAccounts resolves accounts from a fixed map; creation registers the
// account like the real user database.
type fakeAccounts struct {
	known       map[string]*host.Account
	createCalls []string
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{known: make(map[string]*host.Account)}
}

func (a *fakeAccounts) Lookup(name string) (*host.Account, error) {
	if acc, ok := a.known[name]; ok {
		return acc, nil
	}
	return nil, fmt.Errorf("%w: %s", host.ErrAccountNotFound, name)
}

func (a *fakeAccounts) CreateSystemAccount(_ context.Context, name string) error {
	a.createCalls = append(a.createCalls, name)
	// Current uid/gid so tests that chown real files stay permitted.
	a.known[name] = &host.Account{Name: name, UID: os.Getuid(), GID: os.Getgid()}
	return nil
}

// fakeServices implements host.ServiceManager with canned status output.
type fakeServices struct {
	calls     []string
	statusOut string
	statusErr error
}

func (s *fakeServices) DaemonReload(context.Context) error {
	s.calls = append(s.calls, "daemon-reload")
	return nil
}

func (s *fakeServices) Enable(_ context.Context, unit string) error {
	s.calls = append(s.calls, "enable "+unit)
	return nil
}

func (s *fakeServices) Start(_ context.Context, unit string) error {
	s.calls = append(s.calls, "start "+unit)
	return nil
}

func (s *fakeServices) Status(_ context.Context, unit string) (string, error) {
	s.calls = append(s.calls, "status "+unit)
	if s.statusErr != nil {
		return "", s.statusErr
	}
	return s.statusOut, nil
}

// fakeRunner resolves PATH lookups from a fixed map; commands always
// succeed.
type fakeRunner struct {
	paths map[string]string
}

func (r *fakeRunner) Run(context.Context, host.CommandSpec) (*host.CommandResult, error) {
	return &host.CommandResult{ExitCode: 0}, nil
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	if p, ok := r.paths[name]; ok {
		return p, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

// allToolPaths returns a PATH map covering the full tool catalog.
func allToolPaths() map[string]string {
	names := []string{
		"subfinder", "nmap", "feroxbuster", "dirsearch", "whatweb", "dig", "whois",
		"python3", "sudo", "useradd", "systemctl",
	}
	paths := make(map[string]string, len(names))
	for _, n := range names {
		paths[n] = "/usr/bin/" + n
	}
	return paths
}
