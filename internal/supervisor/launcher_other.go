//go:build !linux && !darwin

package supervisor

// NewLauncher reports the platform as unsupported. Running with no
// backend at all would only defer the failure to the first frontend
// request, so this is treated as a fatal configuration error.
func NewLauncher() (Launcher, error) {
	return nil, ErrUnsupportedPlatform
}
