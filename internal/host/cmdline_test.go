// SPDX-License-Identifier: MPL-2.0

package host

import "testing"

func TestShellLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		args []string
		want string
	}{
		{
			name: "plain argv",
			path: "systemctl",
			args: []string{"enable", "telegram-recon-bot.service"},
			want: "systemctl enable telegram-recon-bot.service",
		},
		{
			name: "no args",
			path: "useradd",
			args: nil,
			want: "useradd",
		},
		{
			name: "argument with spaces",
			path: "useradd",
			args: []string{"-c", "recon bot"},
			want: "useradd -c 'recon bot'",
		},
		{
			name: "single quote in argument",
			path: "echo",
			args: []string{"it's"},
			want: `echo "it's"`,
		},
		{
			name: "empty argument survives",
			path: "env",
			args: []string{""},
			want: "env ''",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ShellLine(tt.path, tt.args)
			if got != tt.want {
				t.Errorf("ShellLine(%q, %v) = %q, want %q", tt.path, tt.args, got, tt.want)
			}
		})
	}
}
