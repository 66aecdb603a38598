// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// maxAccountLen is the longest account name useradd accepts.
	maxAccountLen = 32

	// venvDirName is the virtualenv directory created under the workdir.
	venvDirName = "venv"

	// requirementsFileName is the pip manifest expected in the workdir.
	requirementsFileName = "requirements.txt"

	// entryFileName is the bot entry point expected in the workdir.
	entryFileName = "bot.py"
)

// accountPattern matches useradd-compatible account names. The optional
// trailing $ covers machine accounts.
var accountPattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]*\$?$`)

var (
	// ErrInvalidServiceAccount is returned when a ServiceAccount value violates useradd naming rules.
	ErrInvalidServiceAccount = errors.New("invalid service account")
	// ErrInvalidInstallPath is returned when an InstallPath value is empty or not absolute.
	ErrInvalidInstallPath = errors.New("invalid install path")
	// ErrInvalidUnitName is returned when a UnitName value is not a plain .service file name.
	ErrInvalidUnitName = errors.New("invalid unit name")
	// ErrInvalidInterpreter is returned when an Interpreter value is whitespace-only.
	ErrInvalidInterpreter = errors.New("invalid interpreter")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ServiceAccount is the name of the low-privilege account the bot runs as.
	// A valid name satisfies useradd rules: starts with a lowercase letter or
	// underscore, continues with lowercase letters, digits, underscores or
	// dashes, optionally ends with $, and is at most 32 characters long.
	ServiceAccount string

	// InvalidServiceAccountError is returned when a ServiceAccount value is not
	// accepted by useradd. It wraps ErrInvalidServiceAccount for errors.Is().
	InvalidServiceAccountError struct {
		Value ServiceAccount
	}

	// InstallPath represents an absolute filesystem path used by the installer
	// (working directory, environment file, unit directory).
	InstallPath string

	// InvalidInstallPathError is returned when an InstallPath value is empty,
	// whitespace-only, or relative. It wraps ErrInvalidInstallPath for errors.Is().
	InvalidInstallPathError struct {
		Value InstallPath
	}

	// UnitName represents a systemd unit file name such as
	// "telegram-recon-bot.service". A valid name contains no path separators
	// and carries the .service suffix.
	UnitName string

	// InvalidUnitNameError is returned when a UnitName value is not a plain
	// .service file name. It wraps ErrInvalidUnitName for errors.Is().
	InvalidUnitNameError struct {
		Value UnitName
	}

	// Interpreter is the Python executable used to seed the virtualenv.
	// The value may be a bare command name (resolved via PATH) or a path.
	Interpreter string

	// InvalidInterpreterError is returned when an Interpreter value is empty
	// or whitespace-only. It wraps ErrInvalidInterpreter for errors.Is().
	InvalidInterpreterError struct {
		Value Interpreter
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables step-by-step command echo and full error chains
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the installer configuration.
	Config struct {
		// Account is the service account the bot runs as
		Account ServiceAccount `json:"account" mapstructure:"account"`
		// Workdir is the directory the bot sources are installed into
		Workdir InstallPath `json:"workdir" mapstructure:"workdir"`
		// EnvFile is the path of the generated environment file
		EnvFile InstallPath `json:"env_file" mapstructure:"env_file"`
		// UnitDir is the directory the systemd unit is written to
		UnitDir InstallPath `json:"unit_dir" mapstructure:"unit_dir"`
		// ServiceName is the systemd unit file name
		ServiceName UnitName `json:"service_name" mapstructure:"service_name"`
		// Python is the interpreter used to seed the virtualenv
		Python Interpreter `json:"python" mapstructure:"python"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}
)

// String returns the account name as a plain string.
func (a ServiceAccount) String() string { return string(a) }

// IsValid returns whether the ServiceAccount satisfies useradd naming rules,
// and a list of validation errors if it does not.
func (a ServiceAccount) IsValid() (bool, []error) {
	if len(a) == 0 || len(a) > maxAccountLen || !accountPattern.MatchString(string(a)) {
		return false, []error{&InvalidServiceAccountError{Value: a}}
	}
	return true, nil
}

// Error implements the error interface for InvalidServiceAccountError.
func (e *InvalidServiceAccountError) Error() string {
	return fmt.Sprintf("invalid service account %q: must match %s and be at most %d characters",
		e.Value, accountPattern.String(), maxAccountLen)
}

// Unwrap returns ErrInvalidServiceAccount for errors.Is() compatibility.
func (e *InvalidServiceAccountError) Unwrap() error { return ErrInvalidServiceAccount }

// String returns the path as a plain string.
func (p InstallPath) String() string { return string(p) }

// IsValid returns whether the InstallPath is a non-empty absolute path,
// and a list of validation errors if it is not.
func (p InstallPath) IsValid() (bool, []error) {
	trimmed := strings.TrimSpace(string(p))
	if trimmed == "" || !filepath.IsAbs(trimmed) {
		return false, []error{&InvalidInstallPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidInstallPathError.
func (e *InvalidInstallPathError) Error() string {
	return fmt.Sprintf("invalid install path %q: must be a non-empty absolute path", e.Value)
}

// Unwrap returns ErrInvalidInstallPath for errors.Is() compatibility.
func (e *InvalidInstallPathError) Unwrap() error { return ErrInvalidInstallPath }

// String returns the unit name as a plain string.
func (n UnitName) String() string { return string(n) }

// IsValid returns whether the UnitName is a plain .service file name,
// and a list of validation errors if it is not.
func (n UnitName) IsValid() (bool, []error) {
	name := string(n)
	if name == "" || strings.ContainsRune(name, '/') || !strings.HasSuffix(name, ".service") || name == ".service" {
		return false, []error{&InvalidUnitNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUnitNameError.
func (e *InvalidUnitNameError) Error() string {
	return fmt.Sprintf("invalid unit name %q: must be a plain file name with the .service suffix", e.Value)
}

// Unwrap returns ErrInvalidUnitName for errors.Is() compatibility.
func (e *InvalidUnitNameError) Unwrap() error { return ErrInvalidUnitName }

// String returns the interpreter as a plain string.
func (i Interpreter) String() string { return string(i) }

// IsValid returns whether the Interpreter is non-empty, and a list of
// validation errors if it is not.
func (i Interpreter) IsValid() (bool, []error) {
	if strings.TrimSpace(string(i)) == "" {
		return false, []error{&InvalidInterpreterError{Value: i}}
	}
	return true, nil
}

// Error implements the error interface for InvalidInterpreterError.
func (e *InvalidInterpreterError) Error() string {
	return fmt.Sprintf("invalid interpreter %q: must be a command name or path", e.Value)
}

// Unwrap returns ErrInvalidInterpreter for errors.Is() compatibility.
func (e *InvalidInterpreterError) Unwrap() error { return ErrInvalidInterpreter }

// IsValid returns whether the Config has valid fields.
// It delegates to the IsValid method of each typed field; bool fields
// need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Account.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, p := range []InstallPath{c.Workdir, c.EnvFile, c.UnitDir} {
		if valid, fieldErrs := p.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.ServiceName.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Python.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Venv returns the virtualenv directory under the working directory.
func (c Config) Venv() string {
	return filepath.Join(string(c.Workdir), venvDirName)
}

// VenvPython returns the interpreter inside the virtualenv.
func (c Config) VenvPython() string {
	return filepath.Join(c.Venv(), "bin", "python")
}

// VenvPip returns the pip executable inside the virtualenv.
func (c Config) VenvPip() string {
	return filepath.Join(c.Venv(), "bin", "pip")
}

// Requirements returns the pip manifest path under the working directory.
func (c Config) Requirements() string {
	return filepath.Join(string(c.Workdir), requirementsFileName)
}

// EntryPoint returns the bot entry script path under the working directory.
func (c Config) EntryPoint() string {
	return filepath.Join(string(c.Workdir), entryFileName)
}

// UnitPath returns the full path of the systemd unit file.
func (c Config) UnitPath() string {
	return filepath.Join(string(c.UnitDir), string(c.ServiceName))
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Account:     "botuser",
		Workdir:     "/opt/telegram-recon-bot",
		EnvFile:     "/etc/telegram-recon-bot.env",
		UnitDir:     "/etc/systemd/system",
		ServiceName: "telegram-recon-bot.service",
		Python:      "python3",
		UI: UIConfig{
			Verbose: false,
		},
	}
}
