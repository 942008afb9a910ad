// internal/actions/selection.go
package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

// SelectByValue picks the option whose value attribute equals value in the
// native select at xpath. On failure a selection_error screenshot is taken
// and the error returned.
func (f *Facade) SelectByValue(ctx context.Context, xpath, value string) error {
	return f.selectOption(ctx, "select_by_value", xpath, func(i int, opt browser.Element) (bool, error) {
		v, err := opt.GetAttribute("value")
		return v == value, err
	}, fmt.Sprintf("value %q", value))
}

// SelectByIndex picks the n-th option (zero-based) of the native select at
// xpath. See SelectByValue.
func (f *Facade) SelectByIndex(ctx context.Context, xpath string, n int) error {
	return f.selectOption(ctx, "select_by_index", xpath, func(i int, _ browser.Element) (bool, error) {
		return i == n, nil
	}, fmt.Sprintf("index %d", n))
}

func (f *Facade) selectOption(ctx context.Context, verb, xpath string, match func(int, browser.Element) (bool, error), want string) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	if err := f.choose(ctx, d, XPath(xpath), match, want); err != nil {
		f.log(ctx).Error("Selection failed.", zap.String("xpath", xpath), zap.String("option", want), zap.Error(err))
		f.snapshot(d, LabelSelectionError)
		return f.record(verb, err)
	}
	return f.record(verb, nil)
}

func (f *Facade) choose(ctx context.Context, d browser.Driver, t Target, match func(int, browser.Element) (bool, error), want string) error {
	el, err := f.waitClickable(ctx, d, t, f.timeouts.Explicit)
	if err != nil {
		return err
	}
	tag, err := el.TagName()
	if err != nil {
		return err
	}
	if !strings.EqualFold(tag, "select") {
		return fmt.Errorf("%w: %s is a <%s>, not a <select>", browser.ErrInteractionFailed, t, tag)
	}
	opts, err := el.FindElements(selenium.ByTagName, "option")
	if err != nil {
		return err
	}
	for i, opt := range opts {
		ok, err := match(i, opt)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		selected, err := opt.IsSelected()
		if err != nil {
			return err
		}
		if selected {
			return nil
		}
		return opt.Click()
	}
	return fmt.Errorf("%w: no option with %s in %s", browser.ErrNotFound, want, t)
}

// DropdownOptionLocator is the XPath of a custom dropdown entry by its aria-label.
func DropdownOptionLocator(label string) string {
	return fmt.Sprintf("//li[@aria-label='%s']", label)
}

// SelectValue clicks the custom dropdown entry labelled label once it is clickable.
func (f *Facade) SelectValue(ctx context.Context, label string) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	t := XPath(DropdownOptionLocator(label))
	el, err := f.waitClickable(ctx, d, t, f.timeouts.Explicit)
	if err != nil {
		return f.record("select_value", err)
	}
	if _, err := d.ExecuteScript(clickScript, el); err != nil {
		return f.record("select_value", fmt.Errorf("clicking %s: %w", t, err))
	}
	return f.record("select_value", nil)
}
