// Package main is the entry point for the Thinkube Installer. It
// supports both GUI mode (no args) and CLI mode (with subcommands).
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	goruntime "runtime"

	"thinkube-installer/internal/cli"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

// buildMode selects backend resolution; overridden to "development" via
// -ldflags in dev builds.
var buildMode = "production"

func main() {
	if goruntime.GOOS == "linux" {
		// Webkit's DMA-BUF renderer produces a white window on some
		// NVIDIA systems. Must be set before the webview initializes.
		os.Setenv("WEBKIT_DISABLE_DMABUF_RENDERER", "1")
	}

	if shouldRunGUI() {
		runGUI()
	} else {
		runCLI()
	}
}

// shouldRunGUI determines if we should launch GUI mode.
// GUI mode is launched when no arguments are provided or the first
// argument is "gui"; everything else goes to the CLI parser.
func shouldRunGUI() bool {
	if len(os.Args) <= 1 {
		return true
	}
	return os.Args[1] == "gui"
}

// runGUI starts the Wails GUI application.
func runGUI() {
	app := NewApp()

	// Sub filesystem to serve from dist directory
	assetsFS, err := fs.Sub(assets, "frontend/dist")
	if err != nil {
		log.Fatal("Failed to create sub filesystem:", err)
	}

	err = wails.Run(&options.App{
		Title:  "Thinkube Installer",
		Width:  1200,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assetsFS,
		},
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 1},
		// The window stays hidden until the backend is ready; startup
		// shows and centers it.
		StartHidden:   true,
		OnStartup:     app.startup,
		OnShutdown:    app.shutdown,
		OnBeforeClose: app.beforeClose,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		log.Fatal("Error:", err.Error())
	}
}

// runCLI runs the CLI command parser.
func runCLI() {
	rootCmd := cli.NewRootCmd()

	guiCmd := &cli.GuiCommand{
		RunGUI: runGUI,
	}
	rootCmd.AddCommand(guiCmd.Command())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
