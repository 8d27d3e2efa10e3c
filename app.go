// Package main contains the application lifecycle management.
package main

import (
	"context"
	"os"
	"time"

	"thinkube-installer/internal/backend"
	"thinkube-installer/internal/config"
	"thinkube-installer/internal/supervisor"
	"thinkube-installer/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App holds the application state and dependencies.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	client *backend.Client
	sup    *supervisor.Supervisor
	flags  supervisor.ConfigFlags
	logger zerolog.Logger
}

// NewApp creates a new App application struct. Configuration problems
// fall back to defaults so the window can still come up and report
// them.
func NewApp() *App {
	cfg := loadConfig()

	logFile := cfg.Log.File
	if logFile == "" {
		if path, err := config.DefaultLogPath(); err == nil {
			logFile = path
		}
	}
	if err := logger.Init(logger.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   logFile,
	}); err != nil {
		// Logging falls back to stderr inside the logger package.
		logger.Error().Err(err).Msg("Failed to initialize log file")
	}

	return &App{
		cfg:    cfg,
		client: backend.NewClient(cfg.Backend.URL(), 10*time.Second),
		flags:  supervisor.SnapshotFlags(),
		logger: *logger.Get(),
	}
}

// loadConfig ensures the config directory exists and loads (or writes)
// the configuration file.
func loadConfig() *config.Config {
	if dir, err := config.DefaultConfigDir(); err == nil {
		_ = os.MkdirAll(dir, 0755)
	}

	path, err := config.DefaultConfigPath()
	if err == nil {
		if cfg, err := config.EnsureDefaultConfig(path); err == nil {
			return cfg
		}
	}

	cfg, _ := config.Load("")
	return cfg
}

// startup is called when the app starts. It spawns the backend, waits
// for it to become ready and then reveals the window. Setup failures
// that leave us without a backend are fatal: the installer is useless
// without one, so the process exits with a diagnostic log.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.logger.Info().Str("mode", buildMode).Msg("Thinkube Installer starting")

	a.logger.Info().
		Bool("test_mode", a.flags.TestMode).
		Bool("shell_config", a.flags.ShellConfig).
		Msg("Configuration flags")

	var resourceDir string
	if buildMode != supervisor.ModeDevelopment {
		var err error
		resourceDir, err = supervisor.ResourceDir()
		if err != nil {
			a.logger.Fatal().Err(err).Msg("Cannot access app resources")
		}
	}

	loc, err := supervisor.Locate(buildMode, resourceDir, a.logger)
	if err != nil {
		a.logger.Fatal().Err(err).Msg("Backend location could not be resolved")
	}
	a.logger.Info().Str("backend_dir", loc.BackendDir).Str("venv", loc.VenvName).Msg("Backend located")

	if buildMode != supervisor.ModeDevelopment {
		if err := supervisor.Provision(loc, a.logger); err != nil {
			a.logger.Fatal().Err(err).Msg("Backend environment provisioning failed")
		}
	}

	launcher, err := supervisor.NewLauncher()
	if err != nil {
		a.logger.Fatal().Err(err).Msg("No backend launcher for this platform")
	}

	a.sup = supervisor.New(loc, launcher, a.logger)
	if err := a.sup.Start(); err != nil {
		a.logger.Fatal().Err(err).Msg("Failed to start backend")
	}

	readiness := supervisor.ReadinessConfig{
		Timeout:      a.cfg.Readiness.Timeout,
		InitialDelay: a.cfg.Readiness.InitialDelay,
		MaxDelay:     a.cfg.Readiness.MaxDelay,
	}
	if err := a.sup.WaitReady(ctx, a.client, readiness); err != nil {
		a.sup.Shutdown()
		a.logger.Fatal().Err(err).Msg("Backend did not become ready")
	}

	runtime.WindowShow(ctx)
	runtime.WindowCenter(ctx)
	runtime.WindowUnminimise(ctx)

	a.logger.Info().Msg("Setup complete")
}

// shutdown is called when the app terminates.
func (a *App) shutdown(ctx context.Context) {
	a.logger.Info().Msg("Thinkube Installer shutting down")

	if a.sup != nil {
		a.sup.Shutdown()
	}
	_ = logger.Close()
}

// beforeClose is called when the user tries to close the window. The
// backend is stopped here so the close request itself tears it down;
// shutdown's second call observes an empty handle and does nothing.
func (a *App) beforeClose(ctx context.Context) (prevent bool) {
	if a.sup != nil {
		a.sup.Shutdown()
	}
	return false
}

// GetConfigFlags returns the environment flag snapshot, unchanged, for
// the frontend.
func (a *App) GetConfigFlags() supervisor.ConfigFlags {
	return a.flags
}

// GetBackendStatus returns the supervised process status.
func (a *App) GetBackendStatus() supervisor.Status {
	if a.sup == nil {
		return supervisor.Status{}
	}
	return a.sup.Status()
}

// BackendHealthy reports whether the backend currently answers its
// health endpoint.
func (a *App) BackendHealthy() bool {
	if a.ctx == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(a.ctx, 2*time.Second)
	defer cancel()
	return a.client.Health(ctx) == nil
}
