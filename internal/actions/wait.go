// internal/actions/wait.go
package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

// errNotYet marks a predicate that has not held yet.
var errNotYet = errors.New("condition not met")

// retryable reports whether a probe error means "keep polling". Anything
// else, an open alert in particular, ends the wait.
func retryable(err error) bool {
	return errors.Is(err, errNotYet) ||
		errors.Is(err, browser.ErrNotFound) ||
		errors.Is(err, browser.ErrStaleElement)
}

// poll evaluates probe every PollInterval until it succeeds or timeout
// elapses. The first evaluation is immediate. Timeouts surface as
// ErrWaitTimeout wrapping the last probe error.
func poll[T any](ctx context.Context, f *Facade, predicate string, timeout time.Duration, probe func() (T, error)) (T, error) {
	start := time.Now()
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		result T
		last   error
	)
	op := func() error {
		v, err := probe()
		if err == nil {
			result = v
			return nil
		}
		last = err
		if retryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(f.timeouts.PollInterval), waitCtx)
	err := backoff.Retry(op, b)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		f.metrics.ObserveWait(predicate, "ok", elapsed)
		return result, nil
	case ctx.Err() != nil:
		f.metrics.ObserveWait(predicate, "cancelled", elapsed)
		var zero T
		return zero, fmt.Errorf("waiting for %s: %w", predicate, ctx.Err())
	case errors.Is(err, context.DeadlineExceeded) || retryable(err):
		f.metrics.ObserveWait(predicate, "timeout", elapsed)
		var zero T
		if last == nil {
			last = errNotYet
		}
		return zero, fmt.Errorf("%w: %s after %s: %w", browser.ErrWaitTimeout, predicate, timeout, last)
	default:
		f.metrics.ObserveWait(predicate, "error", elapsed)
		var zero T
		return zero, err
	}
}

func (f *Facade) waitVisible(ctx context.Context, d browser.Driver, t Target, timeout time.Duration) (browser.Element, error) {
	return poll(ctx, f, "visible", timeout, func() (browser.Element, error) {
		el, err := t.probe(d)
		if err != nil {
			return nil, err
		}
		shown, err := el.IsDisplayed()
		if err != nil {
			return nil, err
		}
		if !shown {
			return nil, errNotYet
		}
		return el, nil
	})
}

func (f *Facade) waitClickable(ctx context.Context, d browser.Driver, t Target, timeout time.Duration) (browser.Element, error) {
	return poll(ctx, f, "clickable", timeout, func() (browser.Element, error) {
		el, err := t.probe(d)
		if err != nil {
			return nil, err
		}
		ok, err := clickable(el)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errNotYet
		}
		return el, nil
	})
}

func clickable(el browser.Element) (bool, error) {
	shown, err := el.IsDisplayed()
	if err != nil || !shown {
		return false, err
	}
	return el.IsEnabled()
}

// waitInvisible holds once t is absent, detached or hidden.
func (f *Facade) waitInvisible(ctx context.Context, d browser.Driver, t Target, timeout time.Duration) error {
	_, err := poll(ctx, f, "invisible", timeout, func() (struct{}, error) {
		el, err := t.probe(d)
		if errors.Is(err, browser.ErrNotFound) {
			return struct{}{}, nil
		}
		if err != nil {
			return struct{}{}, err
		}
		shown, err := el.IsDisplayed()
		if errors.Is(err, browser.ErrStaleElement) {
			return struct{}{}, nil
		}
		if err != nil {
			return struct{}{}, err
		}
		if shown {
			return struct{}{}, errNotYet
		}
		return struct{}{}, nil
	})
	return err
}

// waitNotClickable holds once t stops being clickable.
func (f *Facade) waitNotClickable(ctx context.Context, d browser.Driver, t Target, timeout time.Duration) error {
	_, err := poll(ctx, f, "not_clickable", timeout, func() (struct{}, error) {
		el, err := t.probe(d)
		if errors.Is(err, browser.ErrNotFound) {
			return struct{}{}, nil
		}
		if err != nil {
			return struct{}{}, err
		}
		ok, err := clickable(el)
		if errors.Is(err, browser.ErrStaleElement) {
			return struct{}{}, nil
		}
		if err != nil {
			return struct{}{}, err
		}
		if ok {
			return struct{}{}, errNotYet
		}
		return struct{}{}, nil
	})
	return err
}

// waitAlert holds once an alert is open and returns its text.
func (f *Facade) waitAlert(ctx context.Context, d browser.Driver, timeout time.Duration) (string, error) {
	return poll(ctx, f, "alert_present", timeout, func() (string, error) {
		text, err := d.AlertText()
		if errors.Is(err, browser.ErrAlertMissing) {
			return "", errNotYet
		}
		return text, err
	})
}

// TextLocator is the XPath that matches any node whose own text contains text.
func TextLocator(text string) string {
	return fmt.Sprintf("//*[contains(text(),'%s')]", text)
}

// WaitUntilVisible waits up to the explicit budget for t to be displayed.
func (f *Facade) WaitUntilVisible(ctx context.Context, t Target) (browser.Element, error) {
	d, err := f.driver(ctx)
	if err != nil {
		return nil, err
	}
	el, err := f.waitVisible(ctx, d, t, f.timeouts.Explicit)
	return el, f.record("wait_visible", err)
}

// WaitUntilElementVisible is WaitUntilVisible for an XPath.
func (f *Facade) WaitUntilElementVisible(ctx context.Context, xpath string) (browser.Element, error) {
	return f.WaitUntilVisible(ctx, XPath(xpath))
}

// WaitUntilClickable waits up to the explicit budget for t to be displayed
// and enabled.
func (f *Facade) WaitUntilClickable(ctx context.Context, t Target) (browser.Element, error) {
	d, err := f.driver(ctx)
	if err != nil {
		return nil, err
	}
	el, err := f.waitClickable(ctx, d, t, f.timeouts.Explicit)
	return el, f.record("wait_clickable", err)
}

// WaitUntilNotVisible waits up to the explicit budget for t to disappear.
func (f *Facade) WaitUntilNotVisible(ctx context.Context, t Target) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	return f.record("wait_not_visible", f.waitInvisible(ctx, d, t, f.timeouts.Explicit))
}

// WaitUntilNotClickable waits up to the explicit budget for t to become
// hidden, disabled, absent or detached.
func (f *Facade) WaitUntilNotClickable(ctx context.Context, t Target) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	return f.record("wait_not_clickable", f.waitNotClickable(ctx, d, t, f.timeouts.Explicit))
}

// WaitUntilAlertPresent waits up to the explicit budget for an alert.
func (f *Facade) WaitUntilAlertPresent(ctx context.Context) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	_, err = f.waitAlert(ctx, d, f.timeouts.Explicit)
	return f.record("wait_alert", err)
}

// WaitUntilTextPresent waits up to the explicit budget for text to appear in
// any node.
func (f *Facade) WaitUntilTextPresent(ctx context.Context, text string) (browser.Element, error) {
	return f.WaitUntilVisible(ctx, XPath(TextLocator(text)))
}

// HardWait sleeps for d. Cancellation of ctx cuts the sleep short and is
// logged, not returned.
func (f *Facade) HardWait(ctx context.Context, d time.Duration) {
	if err := f.sleep(ctx, d); err != nil {
		f.log(ctx).Warn("Hard wait interrupted.", zap.Duration("duration", d), zap.Error(err), zap.Stack("trace"))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
