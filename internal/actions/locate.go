// internal/actions/locate.go
package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

const shadowQueryScript = "return document.querySelector(arguments[0]).shadowRoot.querySelector(arguments[1]);"

// FindByXPath returns the first element matching xpath. The session's
// implicit wait applies.
func (f *Facade) FindByXPath(ctx context.Context, xpath string) (browser.Element, error) {
	return f.find(ctx, browser.ByXPath(xpath))
}

// Find resolves a locator to a single element. Shadow locators go through
// FindShadowElement.
func (f *Facade) Find(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	return f.find(ctx, loc)
}

func (f *Facade) find(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	if loc.Strategy == browser.StrategyShadow {
		el, err := f.FindShadowElement(ctx, loc.Host, loc.Value)
		if err == nil && el == nil {
			err = fmt.Errorf("%w: %s", browser.ErrNotFound, loc)
		}
		return el, err
	}
	d, err := f.driver(ctx)
	if err != nil {
		return nil, err
	}
	by, value, _ := loc.WebDriver()
	el, err := d.FindElement(by, value)
	if err != nil {
		return nil, f.record("find", fmt.Errorf("finding %s: %w", loc, err))
	}
	return el, f.record("find", nil)
}

// FindAllByXPath returns every element matching xpath, in document order.
// The slice is a snapshot; later DOM changes do not alter it.
func (f *Facade) FindAllByXPath(ctx context.Context, xpath string) ([]browser.Element, error) {
	d, err := f.driver(ctx)
	if err != nil {
		return nil, err
	}
	by, value, _ := browser.ByXPath(xpath).WebDriver()
	els, err := d.FindElements(by, value)
	if err != nil {
		return nil, fmt.Errorf("finding all xpath=%s: %w", xpath, err)
	}
	out := make([]browser.Element, len(els))
	copy(out, els)
	return out, nil
}

// CountByXPath returns the number of elements matching xpath.
func (f *Facade) CountByXPath(ctx context.Context, xpath string) (int, error) {
	els, err := f.FindAllByXPath(ctx, xpath)
	return len(els), err
}

// FindByCSS returns the first element matching the selector, or nil. A
// failed lookup is logged and leaves an Error_finding_WebElement screenshot.
func (f *Facade) FindByCSS(ctx context.Context, css string) browser.Element {
	return f.probeFind(ctx, browser.ByCSS(css))
}

// FindByID returns the element with the given id, or nil. See FindByCSS.
func (f *Facade) FindByID(ctx context.Context, id string) browser.Element {
	return f.probeFind(ctx, browser.ByID(id))
}

// FindByTag returns the first element with the given tag name, or nil. See FindByCSS.
func (f *Facade) FindByTag(ctx context.Context, tag string) browser.Element {
	return f.probeFind(ctx, browser.ByTag(tag))
}

func (f *Facade) probeFind(ctx context.Context, loc browser.Locator) browser.Element {
	d, err := f.driver(ctx)
	if err != nil {
		f.log(ctx).Error("Lookup without a session.", zap.Stringer("locator", loc), zap.Error(err))
		f.snapshot(nil, LabelFindError)
		f.metrics.Action("find", "swallowed")
		return nil
	}
	by, value, _ := loc.WebDriver()
	el, err := d.FindElement(by, value)
	if err != nil {
		f.log(ctx).Error("Element lookup failed.", zap.Stringer("locator", loc), zap.Error(err))
		f.snapshot(d, LabelFindError)
		f.metrics.Action("find", "swallowed")
		return nil
	}
	f.metrics.Action("find", "ok")
	return el
}

// FindShadowElement resolves innerCSS inside the open shadow root of the
// element matching hostCSS. A missing element yields (nil, nil).
func (f *Facade) FindShadowElement(ctx context.Context, hostCSS, innerCSS string) (browser.Element, error) {
	d, err := f.driver(ctx)
	if err != nil {
		return nil, err
	}
	el, err := d.ExecuteScriptElement(shadowQueryScript, hostCSS, innerCSS)
	if err != nil {
		return nil, f.record("find_shadow", fmt.Errorf("querying shadow root of %q: %w", hostCSS, err))
	}
	return el, f.record("find_shadow", nil)
}

// ReplaceXPath substitutes values into the %s placeholders of template, in order.
func ReplaceXPath(template string, values ...string) string {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return fmt.Sprintf(template, args...)
}
