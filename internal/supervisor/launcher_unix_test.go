//go:build linux || darwin

package supervisor

import (
	"strings"
	"testing"
)

func TestShellLauncher_Command(t *testing.T) {
	launcher, err := NewLauncher()
	if err != nil {
		t.Fatalf("NewLauncher() error = %v", err)
	}

	loc := Location{BackendDir: "/opt/installer/backend", VenvName: ".venv"}
	cmd := launcher.Command(loc)

	if cmd.Args[0] != "bash" || cmd.Args[1] != "-c" {
		t.Fatalf("command = %v, want bash -c invocation", cmd.Args[:2])
	}

	script := cmd.Args[2]
	for _, part := range []string{
		"cd '/opt/installer/backend'",
		"source '.venv'/bin/activate",
		"python3 main.py",
	} {
		if !strings.Contains(script, part) {
			t.Errorf("script %q missing %q", script, part)
		}
	}

	if cmd.SysProcAttr == nil || !cmd.SysProcAttr.Setpgid {
		t.Error("Setpgid not set; backend children would escape termination")
	}
}

func TestShellLauncher_CommandQuotesPaths(t *testing.T) {
	launcher, _ := NewLauncher()

	loc := Location{BackendDir: "/tmp/dir with spaces/backend", VenvName: "venv-test"}
	script := launcher.Command(loc).Args[2]

	if !strings.Contains(script, "'/tmp/dir with spaces/backend'") {
		t.Errorf("script %q does not quote the backend directory", script)
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"with space", "'with space'"},
		{"it's", `'it'\''s'`},
	}
	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
