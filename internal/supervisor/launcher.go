package supervisor

import (
	"os"
	"os/exec"
	"strings"
)

// Launcher builds the platform-specific launch command for the backend
// and knows how to signal the resulting process. Exactly one
// implementation is compiled per platform; platforms without an
// implementation fail at startup instead of silently running without a
// backend.
type Launcher interface {
	// Command returns an unstarted command that changes into the
	// backend directory, activates the virtual environment and runs
	// the entry script.
	Command(loc Location) *exec.Cmd

	// Terminate asks the process (and its children) to exit.
	Terminate(p *os.Process) error

	// Kill forcibly ends the process (and its children).
	Kill(p *os.Process) error
}

// shellQuote single-quotes a string for use inside a shell command.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
