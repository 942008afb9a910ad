// internal/actions/interact.go
package actions

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

// Scripts issued by the interaction verbs. Clicks go through the page rather
// than the native click so overlays cannot intercept them; the resulting
// events are synthetic (isTrusted is false).
const (
	clickScript          = "arguments[0].click();"
	scrollCenterScript   = "arguments[0].scrollIntoView({block: 'center'});"
	scrollTopScript      = "arguments[0].scrollIntoView(true);"
	scrollSmoothScript   = "arguments[0].scrollIntoView({behavior: 'smooth', block: 'center'});"
	highlightScript      = "arguments[0].style.border='3px solid yellow'"
	scrollByAmountScript = "window.scrollBy(arguments[0], arguments[1]);"
)

// Click clicks t with a scripted click. For an XPath target a failure is
// logged, leaves an Error_Occured_during_click screenshot and is swallowed.
// For an element target the error is returned.
func (f *Facade) Click(ctx context.Context, t Target) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	err = f.scriptClick(d, t)
	if err == nil {
		f.metrics.Action("click", "ok")
		return nil
	}
	if !t.IsXPath() {
		return f.record("click", err)
	}
	f.log(ctx).Error("Click failed.", zap.Stringer("target", t), zap.Error(err))
	f.snapshot(d, LabelClickError)
	f.metrics.Action("click", "swallowed")
	return nil
}

func (f *Facade) scriptClick(d browser.Driver, t Target) error {
	el, err := t.probe(d)
	if err != nil {
		return fmt.Errorf("clicking %s: %w", t, err)
	}
	if _, err := d.ExecuteScript(clickScript, el); err != nil {
		return fmt.Errorf("clicking %s: %w", t, err)
	}
	return nil
}

// ScrollAndClick waits for t to be visible, centres it and clicks it.
func (f *Facade) ScrollAndClick(ctx context.Context, t Target) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	return f.record("scroll_and_click", f.scrollAndClick(ctx, d, t))
}

func (f *Facade) scrollAndClick(ctx context.Context, d browser.Driver, t Target) error {
	el, err := f.resolve(ctx, d, t)
	if err != nil {
		return err
	}
	if _, err := d.ExecuteScript(scrollCenterScript, el); err != nil {
		return fmt.Errorf("scrolling to %s: %w", t, err)
	}
	if _, err := d.ExecuteScript(clickScript, el); err != nil {
		return fmt.Errorf("clicking %s: %w", t, err)
	}
	return nil
}

// SendText waits for t to be visible, highlights it, clears it and types text.
func (f *Facade) SendText(ctx context.Context, t Target, text string) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	el, err := f.resolve(ctx, d, t)
	if err != nil {
		return f.record("send_text", err)
	}
	return f.record("send_text", typeInto(d, el, t, text))
}

// ScrollAndSendText scrolls t to the top of the viewport, then behaves like
// SendText.
func (f *Facade) ScrollAndSendText(ctx context.Context, t Target, text string) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	el, err := t.probe(d)
	if err != nil {
		return f.record("scroll_and_send_text", err)
	}
	if _, err := d.ExecuteScript(scrollTopScript, el); err != nil {
		return f.record("scroll_and_send_text", fmt.Errorf("scrolling to %s: %w", t, err))
	}
	el, err = f.resolve(ctx, d, Elem(el))
	if err != nil {
		return f.record("scroll_and_send_text", err)
	}
	return f.record("scroll_and_send_text", typeInto(d, el, t, text))
}

func typeInto(d browser.Driver, el browser.Element, t Target, text string) error {
	if _, err := d.ExecuteScript(highlightScript, el); err != nil {
		return fmt.Errorf("highlighting %s: %w", t, err)
	}
	if err := el.Clear(); err != nil {
		return fmt.Errorf("clearing %s: %w", t, err)
	}
	if err := el.SendKeys(text); err != nil {
		return fmt.Errorf("typing into %s: %w", t, err)
	}
	return nil
}

// Highlight draws a 3px yellow border around t.
func (f *Facade) Highlight(ctx context.Context, t Target) error {
	return f.runOnTarget(ctx, "highlight", t, highlightScript)
}

// ScrollIntoView smooth-scrolls t to the centre of the viewport.
func (f *Facade) ScrollIntoView(ctx context.Context, t Target) error {
	return f.runOnTarget(ctx, "scroll_into_view", t, scrollSmoothScript)
}

func (f *Facade) runOnTarget(ctx context.Context, verb string, t Target, script string) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	el, err := t.probe(d)
	if err != nil {
		return f.record(verb, err)
	}
	if _, err := d.ExecuteScript(script, el); err != nil {
		return f.record(verb, fmt.Errorf("%s %s: %w", verb, t, err))
	}
	return f.record(verb, nil)
}

// ScrollByAmount scrolls the window by (x, y) pixels.
func (f *Facade) ScrollByAmount(ctx context.Context, x, y int) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	_, err = d.ExecuteScript(scrollByAmountScript, x, y)
	return f.record("scroll_by", err)
}

// GetText waits for t to be visible and returns its text.
func (f *Facade) GetText(ctx context.Context, t Target) (string, error) {
	d, err := f.driver(ctx)
	if err != nil {
		return "", err
	}
	el, err := f.resolve(ctx, d, t)
	if err != nil {
		return "", f.record("get_text", err)
	}
	text, err := el.Text()
	return text, f.record("get_text", err)
}

// GetAttribute reads an attribute of t without waiting.
func (f *Facade) GetAttribute(ctx context.Context, t Target, name string) (string, error) {
	d, err := f.driver(ctx)
	if err != nil {
		return "", err
	}
	el, err := t.probe(d)
	if err != nil {
		return "", f.record("get_attribute", err)
	}
	v, err := el.GetAttribute(name)
	return v, f.record("get_attribute", err)
}

// IsEnabled reports whether t is enabled, without waiting.
func (f *Facade) IsEnabled(ctx context.Context, t Target) (bool, error) {
	d, err := f.driver(ctx)
	if err != nil {
		return false, err
	}
	el, err := t.probe(d)
	if err != nil {
		return false, f.record("is_enabled", err)
	}
	enabled, err := el.IsEnabled()
	if err != nil {
		return false, f.record("is_enabled", err)
	}
	f.log(ctx).Info("Element enabled probe.", zap.Stringer("target", t), zap.Bool("enabled", enabled))
	return enabled, f.record("is_enabled", nil)
}

// IsDisabled is the negation of IsEnabled.
func (f *Facade) IsDisabled(ctx context.Context, t Target) (bool, error) {
	enabled, err := f.IsEnabled(ctx, t)
	if err != nil {
		return false, err
	}
	f.log(ctx).Info("Element disabled probe.", zap.Stringer("target", t), zap.Bool("disabled", !enabled))
	return !enabled, nil
}

// IsClickable waits up to the click-probe budget for xpath to become
// clickable. A timeout yields false.
func (f *Facade) IsClickable(ctx context.Context, xpath string) (bool, error) {
	d, err := f.driver(ctx)
	if err != nil {
		return false, err
	}
	_, err = f.waitClickable(ctx, d, XPath(xpath), f.timeouts.ClickProbe)
	switch {
	case err == nil:
		f.log(ctx).Info("Element is clickable.", zap.String("xpath", xpath))
		return true, f.record("is_clickable", nil)
	case errors.Is(err, browser.ErrWaitTimeout):
		f.log(ctx).Info("Element is not clickable.", zap.String("xpath", xpath))
		return false, f.record("is_clickable", nil)
	default:
		return false, f.record("is_clickable", err)
	}
}

// IsNotClickable reports true when xpath stays un-clickable for the whole
// click-probe budget and false as soon as it becomes clickable. Lookups
// inside the probe are subject to the session's implicit wait, so a missing
// element can hold the call beyond the budget.
func (f *Facade) IsNotClickable(ctx context.Context, xpath string) (bool, error) {
	clickable, err := f.IsClickable(ctx, xpath)
	if err != nil {
		return false, err
	}
	return !clickable, nil
}
