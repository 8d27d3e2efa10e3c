package supervisor

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
)

// Build modes. The GUI binary is built in production mode by default;
// `wails dev` builds override this via -ldflags.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

const (
	backendDirName = "backend"
	devVenvName    = "venv-test"
	prodVenvName   = ".venv"
	entryScript    = "main.py"
)

// Location is the resolved backend working directory and the name of the
// virtual environment inside it.
type Location struct {
	BackendDir string
	VenvName   string
}

// EntryScript returns the path of the backend entry script.
func (l Location) EntryScript() string {
	return filepath.Join(l.BackendDir, entryScript)
}

// VenvDir returns the path of the virtual environment directory.
func (l Location) VenvDir() string {
	return filepath.Join(l.BackendDir, l.VenvName)
}

// ResourceDir resolves the bundled-resource directory from the location
// of the running executable. On macOS the binary lives in Contents/MacOS
// and resources in Contents/Resources; on Linux resources sit next to
// the binary.
func ResourceDir() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrResourceDirUnknown, err)
	}
	exeDir := filepath.Dir(exePath)

	if runtime.GOOS == "darwin" {
		return filepath.Clean(filepath.Join(exeDir, "..", "Resources")), nil
	}
	return exeDir, nil
}

// Locate resolves the backend location for the given build mode.
//
// Development mode uses ./backend under the current working directory
// with the "venv-test" environment. Production mode uses
// <resourceDir>/backend with the ".venv" environment; a missing backend
// directory there is a fatal configuration error, reported with a
// listing of the resource directory so broken bundles can be diagnosed.
func Locate(mode, resourceDir string, logger zerolog.Logger) (Location, error) {
	if mode == ModeDevelopment {
		cwd, err := os.Getwd()
		if err != nil {
			return Location{}, fmt.Errorf("get working directory: %w", err)
		}
		return Location{
			BackendDir: filepath.Join(cwd, backendDirName),
			VenvName:   devVenvName,
		}, nil
	}

	backendDir := filepath.Join(resourceDir, backendDirName)
	if _, err := os.Stat(backendDir); os.IsNotExist(err) {
		logger.Error().Str("path", backendDir).Msg("Backend directory not found in app bundle")
		logResourceEntries(resourceDir, logger)
		return Location{}, fmt.Errorf("%w: %s", ErrBackendDirMissing, backendDir)
	} else if err != nil {
		return Location{}, fmt.Errorf("stat backend directory: %w", err)
	}

	return Location{
		BackendDir: backendDir,
		VenvName:   prodVenvName,
	}, nil
}

// logResourceEntries enumerates the resource directory for diagnostics
// when the backend is missing from a bundle.
func logResourceEntries(resourceDir string, logger zerolog.Logger) {
	entries, err := os.ReadDir(resourceDir)
	if err != nil {
		logger.Error().Err(err).Str("path", resourceDir).Msg("Cannot read resource directory")
		return
	}
	logger.Error().Str("path", resourceDir).Msg("Resource directory contents:")
	for _, entry := range entries {
		logger.Error().Str("entry", filepath.Join(resourceDir, entry.Name())).Msg("  -")
	}
}
