package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSystemInfo(t *testing.T) {
	r := checkSystemInfo()
	assert.Equal(t, "ok", r.status)
	assert.Contains(t, r.message, "Go ")
}

func TestCheckBackendPort_FreePort(t *testing.T) {
	// Nothing should be listening this high up.
	r := checkBackendPort(64999)
	if r.status == "ok" {
		assert.Contains(t, r.message, "64999")
	} else {
		// Connection inspection can be unavailable in sandboxes.
		assert.Equal(t, "warning", r.status)
	}
}

func TestCheckConfigFile_MissingIsWarning(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	r := checkConfigFile()
	assert.Equal(t, "warning", r.status)
	assert.Contains(t, r.message, "using defaults")
}

func TestLoadDoctorConfig_FallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := loadDoctorConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, 8000, cfg.Backend.Port)
}

func TestVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "version", cmd.Use)
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()
	require.NotNil(t, root)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, strings.Fields(c.Use)[0])
	}
	assert.Contains(t, names, "version")
	assert.Contains(t, names, "doctor")
}
