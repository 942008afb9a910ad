// internal/actions/windows.go
package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

// SwitchToWindowByName activates the window with the given name or handle.
func (f *Facade) SwitchToWindowByName(ctx context.Context, name string) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	if err := d.SwitchWindow(name); err != nil {
		return f.record("switch_window", fmt.Errorf("switching to window %q: %w", name, err))
	}
	return f.record("switch_window", nil)
}

// SwitchToWindowByIndex activates the i-th window handle. An index outside
// the open windows is logged and ignored.
func (f *Facade) SwitchToWindowByIndex(ctx context.Context, i int) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	handles, err := d.WindowHandles()
	if err != nil {
		return f.record("switch_window", fmt.Errorf("listing windows: %w", err))
	}
	if i < 0 || i >= len(handles) {
		f.log(ctx).Error("Window index out of range; staying on the current window.",
			zap.Int("index", i), zap.Int("open", len(handles)))
		f.metrics.Action("switch_window", "swallowed")
		return nil
	}
	if err := d.SwitchWindow(handles[i]); err != nil {
		return f.record("switch_window", fmt.Errorf("switching to window %d: %w", i, err))
	}
	return f.record("switch_window", nil)
}

// OpenNewWindow opens a browser window and switches to it. It returns the
// new handle.
func (f *Facade) OpenNewWindow(ctx context.Context) (string, error) {
	return f.open(ctx, browser.WindowTypeWindow)
}

// OpenNewTab opens a tab and switches to it. It returns the new handle.
func (f *Facade) OpenNewTab(ctx context.Context) (string, error) {
	return f.open(ctx, browser.WindowTypeTab)
}

func (f *Facade) open(ctx context.Context, kind browser.WindowType) (string, error) {
	d, err := f.driver(ctx)
	if err != nil {
		return "", err
	}
	verb := "open_" + string(kind)
	handle, err := d.NewWindow(kind)
	if err != nil {
		return "", f.record(verb, fmt.Errorf("opening %s: %w", kind, err))
	}
	if err := d.SwitchWindow(handle); err != nil {
		return "", f.record(verb, fmt.Errorf("switching to new %s: %w", kind, err))
	}
	return handle, f.record(verb, nil)
}

// CloseCurrentAndReturn closes the active window and switches to the first
// remaining one.
func (f *Facade) CloseCurrentAndReturn(ctx context.Context) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	if err := d.CloseWindow(); err != nil {
		return f.record("close_window", fmt.Errorf("closing window: %w", err))
	}
	handles, err := d.WindowHandles()
	if err != nil {
		return f.record("close_window", fmt.Errorf("listing windows: %w", err))
	}
	if len(handles) == 0 {
		return f.record("close_window", fmt.Errorf("%w: no window left to return to", browser.ErrNotFound))
	}
	if err := d.SwitchWindow(handles[0]); err != nil {
		return f.record("close_window", fmt.Errorf("returning to first window: %w", err))
	}
	return f.record("close_window", nil)
}
