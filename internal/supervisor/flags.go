package supervisor

import "os"

// Environment variables read once at startup and passed through to the
// frontend unchanged. A value of "1" means enabled; anything else,
// including absence, means disabled.
const (
	envTestMode    = "TK_TEST"
	envShellConfig = "TK_SHELL_CONFIG"
)

// ConfigFlags is the runtime-configuration snapshot exposed to the
// presentation layer. The supervisor itself attaches no behavior to it.
type ConfigFlags struct {
	TestMode    bool `json:"test_mode"`
	ShellConfig bool `json:"shell_config"`
}

// SnapshotFlags reads the flag variables from the environment.
func SnapshotFlags() ConfigFlags {
	return ConfigFlags{
		TestMode:    os.Getenv(envTestMode) == "1",
		ShellConfig: os.Getenv(envShellConfig) == "1",
	}
}
