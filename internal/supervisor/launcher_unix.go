//go:build linux || darwin

package supervisor

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// shellLauncher starts the backend through bash so the virtual
// environment's activate script can run. Setpgid puts bash and the
// python interpreter it execs into one process group, so signals reach
// both.
type shellLauncher struct{}

// NewLauncher returns the launcher for the current platform.
func NewLauncher() (Launcher, error) {
	return shellLauncher{}, nil
}

func (shellLauncher) Command(loc Location) *exec.Cmd {
	script := fmt.Sprintf("cd %s && source %s/bin/activate && python3 %s",
		shellQuote(loc.BackendDir), shellQuote(loc.VenvName), entryScript)
	cmd := exec.Command("bash", "-c", script)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return cmd
}

func (shellLauncher) Terminate(p *os.Process) error {
	return syscall.Kill(-p.Pid, syscall.SIGTERM)
}

func (shellLauncher) Kill(p *os.Process) error {
	return syscall.Kill(-p.Pid, syscall.SIGKILL)
}
