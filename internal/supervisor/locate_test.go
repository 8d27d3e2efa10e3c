package supervisor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestLocate_DevelopmentMode(t *testing.T) {
	loc, err := Locate(ModeDevelopment, "", zerolog.Nop())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	cwd, _ := os.Getwd()
	if want := filepath.Join(cwd, "backend"); loc.BackendDir != want {
		t.Errorf("BackendDir = %q, want %q", loc.BackendDir, want)
	}
	if loc.VenvName != "venv-test" {
		t.Errorf("VenvName = %q, want %q", loc.VenvName, "venv-test")
	}
}

func TestLocate_ProductionMode(t *testing.T) {
	resourceDir := t.TempDir()
	backendDir := filepath.Join(resourceDir, "backend")
	if err := os.Mkdir(backendDir, 0755); err != nil {
		t.Fatal(err)
	}

	loc, err := Locate(ModeProduction, resourceDir, zerolog.Nop())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if loc.BackendDir != backendDir {
		t.Errorf("BackendDir = %q, want %q", loc.BackendDir, backendDir)
	}
	if loc.VenvName != ".venv" {
		t.Errorf("VenvName = %q, want %q", loc.VenvName, ".venv")
	}
}

func TestLocate_ProductionModeMissingBackend(t *testing.T) {
	resourceDir := t.TempDir()
	// Sibling entries exist but no backend directory.
	if err := os.WriteFile(filepath.Join(resourceDir, "icon.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Locate(ModeProduction, resourceDir, zerolog.Nop())
	if !errors.Is(err, ErrBackendDirMissing) {
		t.Fatalf("Locate() error = %v, want ErrBackendDirMissing", err)
	}
}

func TestLocation_Paths(t *testing.T) {
	loc := Location{BackendDir: "/srv/app/backend", VenvName: ".venv"}

	if want := filepath.Join("/srv/app/backend", "main.py"); loc.EntryScript() != want {
		t.Errorf("EntryScript() = %q, want %q", loc.EntryScript(), want)
	}
	if want := filepath.Join("/srv/app/backend", ".venv"); loc.VenvDir() != want {
		t.Errorf("VenvDir() = %q, want %q", loc.VenvDir(), want)
	}
}
