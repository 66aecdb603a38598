// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"reconprov/internal/botapi"
	"reconprov/internal/config"
	"reconprov/internal/prompt"
	"reconprov/internal/provision"
)

type (
	// App wires CLI services and shared dependencies. It is the
	// composition root for the CLI layer: all Cobra command handlers
	// receive an App reference and delegate through its interfaces, so
	// tests can swap in fakes for the config source, the prompt stream,
	// the credential check, and every host capability.
	App struct {
		Config   config.Provider
		Asker    prompt.Asker
		Verifier botapi.Verifier
		Host     provision.Host

		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App.
	// Nil fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   config.Provider
		Asker    prompt.Asker
		Verifier botapi.Verifier
		Host     provision.Host
		Stdout   io.Writer
		Stderr   io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Asker == nil {
		deps.Asker = prompt.New()
	}
	if deps.Verifier == nil {
		deps.Verifier = botapi.TelegramVerifier{}
	}
	if (deps.Host == provision.Host{}) {
		deps.Host = provision.DefaultHost()
	}

	return &App{
		Config:   deps.Config,
		Asker:    deps.Asker,
		Verifier: deps.Verifier,
		Host:     deps.Host,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
}

// loadConfig loads the installer configuration, honoring the --config
// flag. Any load failure is returned; mutating commands must not run
// against a half-read configuration.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
}

// configOrDefaults loads the installer configuration for read-only
// commands. On failure it warns and falls back to the defaults so
// reporting stays operational.
func (a *App) configOrDefaults(ctx context.Context) *config.Config {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("warning: ")+formatErrorForDisplay(err, verbose))
		return config.DefaultConfig()
	}
	return cfg
}
