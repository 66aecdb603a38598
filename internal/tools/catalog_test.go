// SPDX-License-Identifier: MPL-2.0

package tools

import (
	"errors"
	"testing"
)

// fakeResolver resolves a fixed set of names.
type fakeResolver struct {
	available map[string]string
}

func (f *fakeResolver) LookPath(name string) (string, error) {
	if path, ok := f.available[name]; ok {
		return path, nil
	}
	return "", errors.New("not found: " + name)
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := Catalog()
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	byName := make(map[string]Tool, len(catalog))
	for _, tool := range catalog {
		if tool.Name == "" || tool.Kind == "" || tool.Purpose == "" {
			t.Errorf("incomplete catalog entry: %+v", tool)
		}
		byName[tool.Name] = tool
	}

	// The bot's runtime tool set
	for _, name := range []string{"subfinder", "nmap", "feroxbuster", "dirsearch", "whatweb", "dig", "whois"} {
		tool, ok := byName[name]
		if !ok {
			t.Errorf("catalog missing recon tool %s", name)
			continue
		}
		if tool.Kind != KindRecon {
			t.Errorf("%s kind = %s, want %s", name, tool.Kind, KindRecon)
		}
	}

	// The installer's own needs
	for _, name := range []string{"python3", "sudo", "useradd", "systemctl"} {
		tool, ok := byName[name]
		if !ok {
			t.Errorf("catalog missing prerequisite %s", name)
			continue
		}
		if tool.Kind != KindPrerequisite {
			t.Errorf("%s kind = %s, want %s", name, tool.Kind, KindPrerequisite)
		}
	}

	// Recon tools come first for display
	if catalog[0].Kind != KindRecon {
		t.Errorf("first entry kind = %s, want %s", catalog[0].Kind, KindRecon)
	}
	if catalog[len(catalog)-1].Kind != KindPrerequisite {
		t.Errorf("last entry kind = %s, want %s", catalog[len(catalog)-1].Kind, KindPrerequisite)
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{available: map[string]string{
		"nmap":      "/usr/bin/nmap",
		"dig":       "/usr/bin/dig",
		"python3":   "/usr/bin/python3",
		"sudo":      "/usr/bin/sudo",
		"useradd":   "/usr/sbin/useradd",
		"systemctl": "/usr/bin/systemctl",
	}}

	results, err := Check(resolver)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	catalog, _ := Catalog()
	if len(results) != len(catalog) {
		t.Fatalf("expected %d results, got %d", len(catalog), len(results))
	}

	for _, res := range results {
		switch res.Tool.Name {
		case "nmap":
			if !res.Found || res.Path != "/usr/bin/nmap" {
				t.Errorf("nmap = %+v", res)
			}
		case "subfinder":
			if res.Found {
				t.Errorf("subfinder should be missing, got %+v", res)
			}
		}
	}
}

func TestMissing(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{available: map[string]string{
		"nmap":      "/usr/bin/nmap",
		"dig":       "/usr/bin/dig",
		"whois":     "/usr/bin/whois",
		"whatweb":   "/usr/bin/whatweb",
		"python3":   "/usr/bin/python3",
		"useradd":   "/usr/sbin/useradd",
		"systemctl": "/usr/bin/systemctl",
	}}

	results, err := Check(resolver)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	missingAll := Missing(results, "")
	if len(missingAll) != 4 { // subfinder, feroxbuster, dirsearch, sudo
		t.Errorf("Missing(all) = %d entries: %+v", len(missingAll), missingAll)
	}

	missingPrereq := Missing(results, KindPrerequisite)
	if len(missingPrereq) != 1 || missingPrereq[0].Tool.Name != "sudo" {
		t.Errorf("Missing(prerequisite) = %+v", missingPrereq)
	}

	missingRecon := Missing(results, KindRecon)
	if len(missingRecon) != 3 {
		t.Errorf("Missing(recon) = %+v", missingRecon)
	}
}
