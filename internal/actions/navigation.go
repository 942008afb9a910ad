// internal/actions/navigation.go
package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	historyBackScript    = "window.history.back();"
	historyForwardScript = "window.history.forward()"
)

// Get navigates to url.
func (f *Facade) Get(ctx context.Context, url string) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	f.log(ctx).Info("Navigating.", zap.String("url", url))
	if err := d.Get(url); err != nil {
		return f.record("get", fmt.Errorf("navigating to %s: %w", url, err))
	}
	return f.record("get", nil)
}

// NavigateBack is the browser back button.
func (f *Facade) NavigateBack(ctx context.Context) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	return f.record("navigate_back", d.Back())
}

// NavigateForward is the browser forward button.
func (f *Facade) NavigateForward(ctx context.Context) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	return f.record("navigate_forward", d.Forward())
}

// Refresh reloads the page.
func (f *Facade) Refresh(ctx context.Context) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	return f.record("refresh", d.Refresh())
}

// GetTitle returns the page title.
func (f *Facade) GetTitle(ctx context.Context) (string, error) {
	d, err := f.driver(ctx)
	if err != nil {
		return "", err
	}
	title, err := d.Title()
	return title, f.record("get_title", err)
}

// WebBack goes back through the page's history API.
func (f *Facade) WebBack(ctx context.Context) error {
	_, err := f.ExecuteScript(ctx, historyBackScript)
	return err
}

// WebFront goes forward through the page's history API.
func (f *Facade) WebFront(ctx context.Context) error {
	_, err := f.ExecuteScript(ctx, historyForwardScript)
	return err
}

// ExecuteScript evaluates script in the page with arguments[i] bound to
// args[i]. Elements may be passed as arguments.
func (f *Facade) ExecuteScript(ctx context.Context, script string, args ...interface{}) (interface{}, error) {
	d, err := f.driver(ctx)
	if err != nil {
		return nil, err
	}
	res, err := d.ExecuteScript(script, args...)
	if err != nil {
		return nil, f.record("execute_script", fmt.Errorf("executing script: %w", err))
	}
	return res, f.record("execute_script", nil)
}
