package app

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Dialog describes a modal message with a single acknowledgment button.
type Dialog struct {
	Title   string
	Message string
	Kind    runtime.DialogType
	Button  string
}

// Surface is the window and dialog layer the startup gate drives.
type Surface interface {
	HideWindow(ctx context.Context)
	ShowWindow(ctx context.Context)
	// ShowError displays d and calls onDismiss once the user acknowledges it.
	// It does not block the caller.
	ShowError(ctx context.Context, d Dialog, onDismiss func())
	Quit(ctx context.Context)
}

// wailsSurface drives the real window through the Wails runtime.
type wailsSurface struct{}

func (wailsSurface) HideWindow(ctx context.Context) {
	if isWailsContext(ctx) {
		runtime.WindowHide(ctx)
	}
}

func (wailsSurface) ShowWindow(ctx context.Context) {
	if isWailsContext(ctx) {
		runtime.WindowShow(ctx)
	}
}

func (wailsSurface) ShowError(ctx context.Context, d Dialog, onDismiss func()) {
	if !isWailsContext(ctx) {
		onDismiss()
		return
	}
	// MessageDialog blocks until dismissed; OnStartup must return first.
	go func() {
		if _, err := runtime.MessageDialog(ctx, runtime.MessageDialogOptions{
			Type:          d.Kind,
			Title:         d.Title,
			Message:       d.Message,
			Buttons:       []string{d.Button},
			DefaultButton: d.Button,
		}); err != nil {
			runtime.LogErrorf(ctx, "message dialog: %v", err)
		}
		onDismiss()
	}()
}

func (wailsSurface) Quit(ctx context.Context) {
	if isWailsContext(ctx) {
		runtime.Quit(ctx)
	}
}

// isWailsContext checks if the context is valid for Wails runtime calls.
// Tests run with context.Background(), which the runtime would reject.
func isWailsContext(ctx context.Context) bool {
	return ctx != nil && ctx != context.Background() && ctx != context.TODO()
}
