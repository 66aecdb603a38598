// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"reconprov/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `reconprov config` command tree.
// Subcommands that read configuration use the App's config provider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage reconprov configuration",
		Long: `Manage reconprov configuration.

Configuration is read from, in order:
  1. the file passed via --config
  2. ` + "`$XDG_CONFIG_HOME/reconprov/config.cue`" + ` (or ~/.config/reconprov/config.cue)
  3. ` + config.SystemConfigPath + `
  4. config.cue in the current directory

Every key is optional; missing files mean the documented defaults.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file search locations",
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfigPath(app)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	if path := resolvedConfigPath(); path != "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("account"), valueStyle.Render(cfg.Account.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("workdir"), valueStyle.Render(cfg.Workdir.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("env_file"), valueStyle.Render(cfg.EnvFile.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("unit_dir"), valueStyle.Render(cfg.UnitDir.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("service_name"), valueStyle.Render(cfg.ServiceName.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("python"), valueStyle.Render(cfg.Python.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("ui.verbose"), valueStyle.Render(fmt.Sprintf("%t", cfg.UI.Verbose)))

	return nil
}

// resolvedConfigPath reports which config file a load would read, or ""
// when every location is empty.
func resolvedConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if cfgDir, err := config.ConfigDir(); err == nil {
		path := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
		if fileExistsCheck(path) {
			return path
		}
	}
	if fileExistsCheck(config.SystemConfigPath) {
		return config.SystemConfigPath
	}
	if fileExistsCheck(config.ConfigFileName + "." + config.ConfigFileExt) {
		return config.ConfigFileName + "." + config.ConfigFileExt
	}
	return ""
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if created {
		fmt.Fprintln(app.stdout, SuccessStyle.Render("Created config file: ")+path)
	} else {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("Config file already exists: ")+path)
	}
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Fprintln(app.stdout, filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	fmt.Fprintln(app.stdout, config.SystemConfigPath)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
