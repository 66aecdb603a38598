// SPDX-License-Identifier: MPL-2.0

// Package tools carries the catalog of external programs the deployment
// depends on: the recon tools the bot shells out to and the host programs
// the installer needs. The catalog is an embedded TOML asset so the list
// ships with the binary.
package tools

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slices"
)

// Tool kinds.
const (
	// KindRecon marks tools the bot invokes at runtime.
	KindRecon = "recon"
	// KindPrerequisite marks programs the installer itself needs.
	KindPrerequisite = "prerequisite"
)

//go:embed catalog.toml
var catalogTOML []byte

type (
	// Tool is one external program dependency.
	Tool struct {
		// Name is the executable name looked up on PATH.
		Name string `toml:"name"`
		// Kind is KindRecon or KindPrerequisite.
		Kind string `toml:"kind"`
		// Purpose is the one-line operator-facing description.
		Purpose string `toml:"purpose"`
	}

	catalogFile struct {
		Tools []Tool `toml:"tool"`
	}
)

// Catalog returns all cataloged tools, recon tools first, each kind sorted
// by name.
func Catalog() ([]Tool, error) {
	var parsed catalogFile
	if err := toml.Unmarshal(catalogTOML, &parsed); err != nil {
		return nil, fmt.Errorf("internal error: failed to parse tool catalog: %w", err)
	}
	if len(parsed.Tools) == 0 {
		return nil, fmt.Errorf("internal error: tool catalog is empty")
	}

	tools := slices.Clone(parsed.Tools)
	slices.SortFunc(tools, func(a, b Tool) int {
		if a.Kind != b.Kind {
			// recon sorts before prerequisite
			if a.Kind == KindRecon {
				return -1
			}
			return 1
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})

	return tools, nil
}
