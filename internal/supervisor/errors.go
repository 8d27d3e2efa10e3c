// Package supervisor owns the installer's Python backend process:
// locating it, provisioning its virtual environment, spawning it and
// tearing it down when the window closes.
package supervisor

import "errors"

// Error definitions.
var (
	ErrBackendDirMissing    = errors.New("backend directory not found")
	ErrResourceDirUnknown   = errors.New("cannot resolve resource directory")
	ErrUnsupportedPlatform  = errors.New("backend launch is not supported on this platform")
	ErrSpawnFailed          = errors.New("failed to start backend process")
	ErrBackendTimeout       = errors.New("backend readiness timeout")
	ErrBackendExited        = errors.New("backend process exited during startup")
	ErrPythonMissing        = errors.New("python3 interpreter not found")
	ErrPythonTooOld         = errors.New("python3 interpreter is too old")
	ErrProvisionFailed      = errors.New("failed to provision backend virtual environment")
)
