package main

import (
	"context"
	"embed"
	"os"

	"Marginalia/internal/app"
	"Marginalia/internal/config"
	"Marginalia/internal/devserver"
	"Marginalia/internal/launch"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assetsFS embed.FS

func main() {
	log := logger.NewDefaultLogger()

	// Resolved before any window exists; read-only from here on.
	opts := launch.Resolve(os.Args)

	cfg, err := config.Load("")
	if err != nil {
		log.Warning("config: " + err.Error() + "; using defaults")
		cfg = config.Default()
	}

	gate := devGate(cfg, log)
	a := app.New(opts, gate, log)

	if err := wails.Run(buildAppOptions(a, cfg, gate != nil, log)); err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}
}

// devGate returns the dev server prober when this build checks for one.
func devGate(cfg config.Config, log logger.Logger) app.Gate {
	if !cfg.ProbeEnabled(devBuild) {
		return nil
	}
	return devserver.New(devserver.URLFromEnv(cfg.DevServerURL), log)
}

// buildAppOptions creates the Wails options. With a gate the window starts
// hidden and the app shows it once the gate passes.
func buildAppOptions(a *app.App, cfg config.Config, gated bool, log logger.Logger) *options.App {
	return &options.App{
		Title:       cfg.Title,
		Width:       cfg.Width,
		Height:      cfg.Height,
		StartHidden: gated,
		AssetServer: &assetserver.Options{
			Assets: assetsFS,
		},
		Logger: log,
		OnStartup: func(ctx context.Context) {
			a.Startup(ctx)
		},
		OnShutdown: func(ctx context.Context) {
			a.Shutdown(ctx)
		},
		Bind: []interface{}{
			a,
		},
	}
}
