// internal/actions/alerts.go
package actions

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

// AcceptAlert waits for an alert and accepts it. When none shows up within
// the explicit budget an Alert_Not_Present screenshot is taken and
// ErrAlertMissing returned. An unexpected-alert error during the wait leaves
// an Unhandled_Alert screenshot and is returned as is.
func (f *Facade) AcceptAlert(ctx context.Context) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	if _, err := f.awaitAlert(ctx, d); err != nil {
		return f.record("accept_alert", err)
	}
	if err := d.AcceptAlert(); err != nil {
		return f.record("accept_alert", fmt.Errorf("accepting alert: %w", err))
	}
	f.log(ctx).Info("Alert accepted.")
	return f.record("accept_alert", nil)
}

// DismissAlert waits for an alert and dismisses it. A timeout returns
// ErrWaitTimeout without a screenshot.
func (f *Facade) DismissAlert(ctx context.Context) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	if _, err := f.waitAlert(ctx, d, f.timeouts.Explicit); err != nil {
		return f.record("dismiss_alert", err)
	}
	if err := d.DismissAlert(); err != nil {
		return f.record("dismiss_alert", fmt.Errorf("dismissing alert: %w", err))
	}
	return f.record("dismiss_alert", nil)
}

// GetAlertText waits for an alert and returns its message.
func (f *Facade) GetAlertText(ctx context.Context) (string, error) {
	d, err := f.driver(ctx)
	if err != nil {
		return "", err
	}
	text, err := f.waitAlert(ctx, d, f.timeouts.Explicit)
	if err != nil {
		return "", f.record("alert_text", err)
	}
	f.log(ctx).Info("Alert text read.", zap.String("text", text))
	return text, f.record("alert_text", nil)
}

// SendKeysToAlert waits for a prompt, types text into it and accepts it.
func (f *Facade) SendKeysToAlert(ctx context.Context, text string) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	if _, err := f.waitAlert(ctx, d, f.timeouts.Explicit); err != nil {
		return f.record("alert_send_keys", err)
	}
	if err := d.SetAlertText(text); err != nil {
		return f.record("alert_send_keys", fmt.Errorf("typing into alert: %w", err))
	}
	if err := d.AcceptAlert(); err != nil {
		return f.record("alert_send_keys", fmt.Errorf("accepting alert: %w", err))
	}
	return f.record("alert_send_keys", nil)
}

// awaitAlert waits for an alert and maps AcceptAlert's failure branches to
// their diagnostic screenshots.
func (f *Facade) awaitAlert(ctx context.Context, d browser.Driver) (string, error) {
	text, err := f.waitAlert(ctx, d, f.timeouts.Explicit)
	switch {
	case err == nil:
		return text, nil
	case errors.Is(err, browser.ErrUnhandledAlert):
		f.log(ctx).Error("Unhandled alert while waiting for alert.", zap.Error(err))
		f.snapshot(d, LabelUnhandledAlert)
		return "", err
	case errors.Is(err, browser.ErrWaitTimeout):
		f.log(ctx).Error("Alert not present.", zap.Duration("timeout", f.timeouts.Explicit))
		f.snapshot(d, LabelAlertMissing)
		return "", fmt.Errorf("%w: none within %s: %w", browser.ErrAlertMissing, f.timeouts.Explicit, err)
	default:
		return "", err
	}
}
