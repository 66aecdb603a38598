// SPDX-License-Identifier: MPL-2.0

// Package envfile encodes and decodes the bot's environment configuration
// file. The file is flat KEY=VALUE, written wholesale on every install run
// (last write wins, no merge) and consumed both by systemd's EnvironmentFile
// and by dotenv loaders.
package envfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Keys of the environment configuration file.
const (
	KeyToken      = "TELEGRAM_TOKEN"
	KeyAllowlist  = "ALLOWLIST"
	KeyTimeoutCmd = "TIMEOUT_CMD"
	KeyMaxBytes   = "MAX_BYTES"
	KeyWorkdir    = "WORKDIR"
	KeyVenv       = "VENV"
	KeyUser       = "USER"
)

// Operational ceilings baked into every generated file.
const (
	// DefaultTimeoutCmd is the per-command timeout in seconds.
	DefaultTimeoutCmd = 240
	// DefaultMaxBytes caps captured tool output per command.
	DefaultMaxBytes = 800000
)

// Values holds the seven entries of the environment configuration file.
type Values struct {
	// Token is the bot credential. Required, never validated beyond
	// non-emptiness.
	Token string
	// Allowlist is the comma-separated chat ID list; empty means no
	// restriction (enforced by the bot, not here).
	Allowlist string
	// TimeoutCmd is the per-command timeout in seconds.
	TimeoutCmd int
	// MaxBytes caps captured output per command.
	MaxBytes int
	// Workdir is the bot working directory.
	Workdir string
	// Venv is the virtualenv directory.
	Venv string
	// User is the service account name.
	User string
}

// New returns Values with the fixed operational ceilings applied.
func New(token, allowlist, workdir, venv, user string) Values {
	return Values{
		Token:      token,
		Allowlist:  allowlist,
		TimeoutCmd: DefaultTimeoutCmd,
		MaxBytes:   DefaultMaxBytes,
		Workdir:    workdir,
		Venv:       venv,
		User:       user,
	}
}

// Encode renders the file content. Keys come out sorted; both systemd's
// EnvironmentFile and dotenv loaders accept the quoting godotenv applies.
func (v Values) Encode() (string, error) {
	if strings.TrimSpace(v.Token) == "" {
		return "", fmt.Errorf("%s must not be empty", KeyToken)
	}

	content, err := godotenv.Marshal(map[string]string{
		KeyToken:      v.Token,
		KeyAllowlist:  v.Allowlist,
		KeyTimeoutCmd: strconv.Itoa(v.TimeoutCmd),
		KeyMaxBytes:   strconv.Itoa(v.MaxBytes),
		KeyWorkdir:    v.Workdir,
		KeyVenv:       v.Venv,
		KeyUser:       v.User,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode environment file: %w", err)
	}

	return content + "\n", nil
}

// Decode parses file content previously written by Encode (or by hand).
// Missing numeric keys fall back to the fixed ceilings.
func Decode(data []byte) (*Values, error) {
	env, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment file: %w", err)
	}

	v := &Values{
		Token:      env[KeyToken],
		Allowlist:  env[KeyAllowlist],
		TimeoutCmd: DefaultTimeoutCmd,
		MaxBytes:   DefaultMaxBytes,
		Workdir:    env[KeyWorkdir],
		Venv:       env[KeyVenv],
		User:       env[KeyUser],
	}

	if raw, ok := env[KeyTimeoutCmd]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyTimeoutCmd, err)
		}
		v.TimeoutCmd = n
	}
	if raw, ok := env[KeyMaxBytes]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyMaxBytes, err)
		}
		v.MaxBytes = n
	}

	return v, nil
}

// RedactedToken returns a display form of the token safe for status output.
// The numeric bot ID before the colon is not a secret; everything after it
// is masked.
func (v Values) RedactedToken() string {
	if v.Token == "" {
		return "(unset)"
	}
	if id, _, ok := strings.Cut(v.Token, ":"); ok && id != "" {
		return id + ":" + strings.Repeat("*", 6)
	}
	return strings.Repeat("*", 6)
}
