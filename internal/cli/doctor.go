package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"thinkube-installer/internal/config"
	"thinkube-installer/internal/supervisor"
)

// NewDoctorCmd creates the doctor command.
func NewDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the installer environment",
		Long: `Run diagnostic checks for the installer.

This command checks:
- Python interpreter availability and version
- Backend directory layout (entry script, requirements, virtual environment)
- Configuration file validity
- Whether the backend port is already taken, and by which process`,
		RunE: runDoctor,
	}

	return cmd
}

type checkResult struct {
	name    string
	status  string // ok, warning, error
	message string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println("Thinkube Installer Doctor")
	fmt.Println("=========================")
	fmt.Println()

	cfg := loadDoctorConfig()

	var results []checkResult
	results = append(results, checkSystemInfo())
	results = append(results, checkPython())
	results = append(results, checkBackendLayout()...)
	results = append(results, checkConfigFile())
	results = append(results, checkBackendPort(cfg.Backend.Port))

	colored := term.IsTerminal(int(os.Stdout.Fd()))

	hasErrors := false
	hasWarnings := false
	for _, r := range results {
		icon := "ok"
		if colored {
			icon = "\033[32m✓\033[0m"
		}
		switch r.status {
		case "warning":
			hasWarnings = true
			icon = "warn"
			if colored {
				icon = "\033[33m!\033[0m"
			}
		case "error":
			hasErrors = true
			icon = "fail"
			if colored {
				icon = "\033[31m✗\033[0m"
			}
		}
		fmt.Printf("%s %s: %s\n", icon, r.name, r.message)
	}

	fmt.Println()
	if hasErrors {
		fmt.Println("Some checks failed. Please address the issues above.")
	} else if hasWarnings {
		fmt.Println("Some warnings detected. The installer should work but may have issues.")
	} else {
		fmt.Println("All checks passed.")
	}

	return nil
}

// loadDoctorConfig loads the config, falling back to defaults so doctor
// can still run against a broken setup.
func loadDoctorConfig() *config.Config {
	path, err := config.DefaultConfigPath()
	if err == nil {
		if cfg, err := config.Load(path); err == nil {
			return cfg
		}
	}
	cfg, _ := config.Load("")
	return cfg
}

func checkSystemInfo() checkResult {
	return checkResult{
		name:   "System",
		status: "ok",
		message: fmt.Sprintf("Go %s on %s/%s",
			runtime.Version(),
			runtime.GOOS,
			runtime.GOARCH,
		),
	}
}

func checkPython() checkResult {
	v, err := supervisor.PythonVersion()
	if err != nil {
		return checkResult{
			name:    "Python",
			status:  "error",
			message: fmt.Sprintf("python3 not usable: %v", err),
		}
	}
	if v.LessThan(supervisor.MinPythonVersion) {
		return checkResult{
			name:    "Python",
			status:  "error",
			message: fmt.Sprintf("python3 %s found, need >= %s", v, supervisor.MinPythonVersion),
		}
	}
	return checkResult{
		name:    "Python",
		status:  "ok",
		message: fmt.Sprintf("python3 %s", v),
	}
}

func checkBackendLayout() []checkResult {
	cwd, err := os.Getwd()
	if err != nil {
		return []checkResult{{
			name:    "Backend",
			status:  "error",
			message: fmt.Sprintf("cannot determine working directory: %v", err),
		}}
	}

	backendDir := filepath.Join(cwd, "backend")
	if _, err := os.Stat(backendDir); os.IsNotExist(err) {
		return []checkResult{{
			name:    "Backend",
			status:  "warning",
			message: fmt.Sprintf("no backend directory at %s (expected in development checkouts)", backendDir),
		}}
	}

	var results []checkResult
	results = append(results, checkResult{
		name:    "Backend",
		status:  "ok",
		message: backendDir,
	})

	for _, f := range []string{"main.py", "requirements.txt"} {
		path := filepath.Join(backendDir, f)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			results = append(results, checkResult{
				name:    "Backend " + f,
				status:  "error",
				message: "missing: " + path,
			})
		} else {
			results = append(results, checkResult{
				name:    "Backend " + f,
				status:  "ok",
				message: "present",
			})
		}
	}

	venvDir := filepath.Join(backendDir, "venv-test")
	if _, err := os.Stat(venvDir); os.IsNotExist(err) {
		results = append(results, checkResult{
			name:    "Virtual environment",
			status:  "warning",
			message: fmt.Sprintf("not found at %s (create it before running in development mode)", venvDir),
		})
	} else {
		results = append(results, checkResult{
			name:    "Virtual environment",
			status:  "ok",
			message: venvDir,
		})
	}

	return results
}

func checkConfigFile() checkResult {
	configPath, err := config.DefaultConfigPath()
	if err != nil {
		return checkResult{
			name:    "Config File",
			status:  "error",
			message: fmt.Sprintf("cannot determine config path: %v", err),
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return checkResult{
			name:    "Config File",
			status:  "warning",
			message: fmt.Sprintf("not found: %s (using defaults)", configPath),
		}
	}

	if _, err := config.Load(configPath); err != nil {
		return checkResult{
			name:    "Config File",
			status:  "error",
			message: fmt.Sprintf("invalid config: %v", err),
		}
	}

	return checkResult{
		name:    "Config File",
		status:  "ok",
		message: configPath,
	}
}

// checkBackendPort reports whether something is already listening on
// the backend port, and which process owns it. A stale backend from a
// crashed session is the usual culprit.
func checkBackendPort(port int) checkResult {
	conns, err := net.Connections("tcp")
	if err != nil {
		return checkResult{
			name:    "Backend Port",
			status:  "warning",
			message: fmt.Sprintf("cannot inspect connections: %v", err),
		}
	}

	for _, conn := range conns {
		if conn.Status != "LISTEN" || conn.Laddr.Port != uint32(port) {
			continue
		}

		owner := "unknown process"
		if conn.Pid > 0 {
			if proc, err := process.NewProcess(conn.Pid); err == nil {
				if name, err := proc.Name(); err == nil {
					owner = fmt.Sprintf("%s (pid %d)", name, conn.Pid)
				}
			}
		}
		return checkResult{
			name:    "Backend Port",
			status:  "warning",
			message: fmt.Sprintf("port %d already in use by %s", port, owner),
		}
	}

	return checkResult{
		name:    "Backend Port",
		status:  "ok",
		message: fmt.Sprintf("port %d is free", port),
	}
}
