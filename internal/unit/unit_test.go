// SPDX-License-Identifier: MPL-2.0

package unit

import (
	"strings"
	"testing"
)

func testParams() Params {
	return Params{
		Workdir: "/opt/telegram-recon-bot",
		Venv:    "/opt/telegram-recon-bot/venv",
		EnvFile: "/etc/telegram-recon-bot.env",
	}
}

func TestRender_SubstitutesPathPlaceholders(t *testing.T) {
	t.Parallel()

	content := Render(testParams())

	for _, want := range []string{
		"WorkingDirectory=/opt/telegram-recon-bot\n",
		"EnvironmentFile=/etc/telegram-recon-bot.env\n",
		"ExecStart=/opt/telegram-recon-bot/venv/bin/python /opt/telegram-recon-bot/bot.py\n",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Render() missing %q:\n%s", want, content)
		}
	}

	if strings.Contains(content, "${") {
		t.Errorf("Render() left a path placeholder behind:\n%s", content)
	}
}

func TestRender_KeepsAccountPlaceholder(t *testing.T) {
	t.Parallel()

	content := Render(testParams())

	if !strings.Contains(content, "User=%i\n") {
		t.Errorf("Render() must leave %%i for the patch step:\n%s", content)
	}
}

func TestRender_HardeningDirectives(t *testing.T) {
	t.Parallel()

	content := Render(testParams())

	for _, want := range []string{
		"Type=simple",
		"Restart=on-failure",
		"RestartSec=3",
		"NoNewPrivileges=true",
		"PrivateTmp=true",
		"ProtectSystem=full",
		"ProtectHome=true",
		"CapabilityBoundingSet=\n",
		"After=network-online.target",
		"Wants=network-online.target",
		"WantedBy=multi-user.target",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Render() missing directive %q", want)
		}
	}
}

func TestPatchAccount(t *testing.T) {
	t.Parallel()

	content := Render(testParams())
	patched := PatchAccount(content, "botuser")

	if !strings.Contains(patched, "User=botuser\n") {
		t.Errorf("PatchAccount() did not set the account:\n%s", patched)
	}
	if strings.Contains(patched, "%i") {
		t.Errorf("PatchAccount() left %%i behind:\n%s", patched)
	}
}

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	t.Run("raw template reports all", func(t *testing.T) {
		t.Parallel()

		got := Placeholders(unitTemplate)
		want := map[string]bool{
			"${WORKDIR}": true,
			"${VENV}":    true,
			"${ENVFILE}": true,
			"%i":         true,
		}
		if len(got) != len(want) {
			t.Fatalf("Placeholders() = %v", got)
		}
		for _, p := range got {
			if !want[p] {
				t.Errorf("unexpected placeholder %q", p)
			}
		}
	})

	t.Run("rendered unit reports only account", func(t *testing.T) {
		t.Parallel()

		got := Placeholders(Render(testParams()))
		if len(got) != 1 || got[0] != "%i" {
			t.Errorf("Placeholders() = %v, want [%%i]", got)
		}
	})

	t.Run("patched unit reports none", func(t *testing.T) {
		t.Parallel()

		patched := PatchAccount(Render(testParams()), "botuser")
		if got := Placeholders(patched); len(got) != 0 {
			t.Errorf("Placeholders() = %v, want none", got)
		}
	})
}
