package app

import (
	"context"
	"fmt"

	"Marginalia/internal/launch"

	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Gate blocks startup until a precondition holds. The dev server prober is the
// only implementation; release builds run without one.
type Gate interface {
	Wait(ctx context.Context) error
}

// App exposes methods to the Wails frontend and owns the launch options.
type App struct {
	ctx context.Context

	// resolved once in main; only copies leave the App
	opts launch.Options

	gate    Gate
	surface Surface
	log     logger.Logger
}

// New stores opts for the lifetime of the process. gate may be nil.
func New(opts launch.Options, gate Gate, log logger.Logger) *App {
	return &App{opts: opts.Clone(), gate: gate, surface: wailsSurface{}, log: log}
}

// devServerDialog is shown when the dev server never came up.
var devServerDialog = Dialog{
	Title:   "Marginalia",
	Message: "Marginalia dev server isn't running.\n\nStart it with `wails dev`, or use the packaged build (`wails build`).",
	Kind:    runtime.ErrorDialog,
	Button:  "OK",
}

// Startup is called by Wails when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	a.logf(a.logInfo, "launch options: file=%s bundle-dir=%s principles=%s out=%s",
		show(a.opts.FilePath), show(a.opts.BundleDir), show(a.opts.PrinciplesPath), show(a.opts.OutPath))
	if a.gate == nil {
		return
	}
	a.checkDevServer(ctx)
}

// Shutdown is called by Wails when the app terminates.
func (a *App) Shutdown(ctx context.Context) {
	a.logf(a.logInfo, "shutting down")
}

// checkDevServer shows the window once the gate passes. Otherwise the window
// stays hidden and the process quits after the user dismisses the error.
func (a *App) checkDevServer(ctx context.Context) {
	if err := a.gate.Wait(ctx); err != nil {
		a.logf(a.logError, "startup gate: %v", err)
		a.surface.HideWindow(ctx)
		a.surface.ShowError(ctx, devServerDialog, func() {
			a.surface.Quit(ctx)
		})
		return
	}
	a.surface.ShowWindow(ctx)
}

// GetCLIFilePath returns the document path given on the command line, or nil.
func (a *App) GetCLIFilePath() *string {
	return a.opts.Clone().FilePath
}

// GetCLIOptions returns all launch options.
func (a *App) GetCLIOptions() launch.Options {
	return a.opts.Clone()
}

// CloseWindow closes the main window and exits.
func (a *App) CloseWindow() {
	a.surface.Quit(a.ctx)
}

func (a *App) logInfo(msg string) { a.log.Info(msg) }
func (a *App) logError(msg string) { a.log.Error(msg) }

func (a *App) logf(level func(string), format string, args ...any) {
	if a.log == nil {
		return
	}
	level(fmt.Sprintf(format, args...))
}

func show(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}
