// SPDX-License-Identifier: MPL-2.0

// Package unit renders the hardened systemd unit for the bot service.
//
// The template carries two kinds of placeholders with different lifetimes:
// the ${WORKDIR}/${VENV}/${ENVFILE} path placeholders are resolved at render
// time (systemd performs no such expansion in unit files, so leaving them
// for unit-start would break the service), while the %i account placeholder
// deliberately survives rendering and is patched on the written file in a
// separate install step.
package unit

import (
	_ "embed"
	"regexp"
	"strings"
)

// AccountPlaceholder is the per-instance account token patched after the
// unit file is written.
const AccountPlaceholder = "%i"

// Path placeholders resolved at render time.
const (
	placeholderWorkdir = "${WORKDIR}"
	placeholderVenv    = "${VENV}"
	placeholderEnvFile = "${ENVFILE}"
)

//go:embed telegram-recon-bot.service.tmpl
var unitTemplate string

// pathPlaceholderPattern matches any ${NAME} token left in rendered output.
var pathPlaceholderPattern = regexp.MustCompile(`\$\{[A-Z_]+\}`)

// Params are the concrete paths substituted into the template.
type Params struct {
	// Workdir is the bot working directory.
	Workdir string
	// Venv is the virtualenv directory.
	Venv string
	// EnvFile is the environment configuration file path.
	EnvFile string
}

// Render fills the path placeholders and returns the unit file content.
// The %i account placeholder is left in place for the patch step.
func Render(p Params) string {
	content := unitTemplate
	content = strings.ReplaceAll(content, placeholderWorkdir, p.Workdir)
	content = strings.ReplaceAll(content, placeholderVenv, p.Venv)
	content = strings.ReplaceAll(content, placeholderEnvFile, p.EnvFile)
	return content
}

// PatchAccount replaces the %i account placeholder with the resolved account
// name. Applied to the written unit file, not to the in-memory render.
func PatchAccount(content, account string) string {
	return strings.ReplaceAll(content, AccountPlaceholder, account)
}

// Placeholders lists placeholder tokens remaining in content: any ${NAME}
// path token plus %i. A fully provisioned unit file reports none.
func Placeholders(content string) []string {
	var found []string
	seen := make(map[string]bool)

	for _, m := range pathPlaceholderPattern.FindAllString(content, -1) {
		if !seen[m] {
			seen[m] = true
			found = append(found, m)
		}
	}
	if strings.Contains(content, AccountPlaceholder) {
		found = append(found, AccountPlaceholder)
	}

	return found
}
