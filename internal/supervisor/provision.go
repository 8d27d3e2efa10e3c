package supervisor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
)

// MinPythonVersion is the oldest interpreter the backend supports.
var MinPythonVersion = semver.MustParse("3.9.0")

var pythonVersionRe = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`)

// Provision creates the backend virtual environment on first run and
// installs its dependencies. Only macOS needs this: the app bundle
// there cannot run a post-install script, so the venv cannot ship with
// the package. Other platforms provision at install time and return
// immediately. Any failure is fatal for the caller.
func Provision(loc Location, logger zerolog.Logger) error {
	if runtime.GOOS != "darwin" {
		return nil
	}

	venvDir := loc.VenvDir()
	if _, err := os.Stat(venvDir); err == nil {
		return nil
	}

	logger.Info().Str("path", venvDir).Msg("First run: creating backend virtual environment")

	python, err := exec.LookPath("python3")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPythonMissing, err)
	}
	if err := checkPythonVersion(python); err != nil {
		return err
	}

	cmd := exec.Command(python, "-m", "venv", venvDir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: create venv: %v", ErrProvisionFailed, err)
	}

	logger.Info().Msg("Installing backend dependencies")

	pip := filepath.Join(venvDir, "bin", "pip")
	requirements := filepath.Join(loc.BackendDir, "requirements.txt")
	cmd = exec.Command(pip, "install", "-q", "-r", requirements)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: install dependencies: %v", ErrProvisionFailed, err)
	}

	logger.Info().Msg("Backend environment setup complete")
	return nil
}

// checkPythonVersion runs `python3 --version` and rejects interpreters
// older than minPythonVersion.
func checkPythonVersion(python string) error {
	out, err := exec.Command(python, "--version").CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPythonMissing, err)
	}
	v, err := parsePythonVersion(string(out))
	if err != nil {
		return err
	}
	if v.LessThan(MinPythonVersion) {
		return fmt.Errorf("%w: found %s, need >= %s", ErrPythonTooOld, v, MinPythonVersion)
	}
	return nil
}

// PythonVersion locates python3 and reports its version.
func PythonVersion() (*semver.Version, error) {
	python, err := exec.LookPath("python3")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPythonMissing, err)
	}
	out, err := exec.Command(python, "--version").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPythonMissing, err)
	}
	return parsePythonVersion(string(out))
}

// parsePythonVersion extracts the version from `python3 --version`
// output such as "Python 3.11.4".
func parsePythonVersion(out string) (*semver.Version, error) {
	m := pythonVersionRe.FindString(strings.TrimSpace(out))
	if m == "" {
		return nil, fmt.Errorf("%w: unrecognized version output %q", ErrPythonMissing, out)
	}
	v, err := semver.NewVersion(m)
	if err != nil {
		return nil, fmt.Errorf("%w: parse version %q: %v", ErrPythonMissing, m, err)
	}
	return v, nil
}
