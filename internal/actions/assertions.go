// internal/actions/assertions.go
package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// PageTextLocator matches nodes whose whitespace-normalised own text
// contains text.
func PageTextLocator(text string) string {
	return fmt.Sprintf("//*[contains(normalize-space(text()),'%s')]", text)
}

// PageShouldContain waits up to the explicit budget for text to be visible
// on the page and scrolls it into view. The error wraps ErrNotFound or
// ErrWaitTimeout when the text never shows.
func (f *Facade) PageShouldContain(ctx context.Context, text string) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	t := XPath(PageTextLocator(text))
	el, err := f.waitVisible(ctx, d, t, f.timeouts.Explicit)
	if err != nil {
		return f.record("page_should_contain", fmt.Errorf("page does not contain %q: %w", text, err))
	}
	if _, err := d.ExecuteScript(scrollTopScript, el); err != nil {
		return f.record("page_should_contain", fmt.Errorf("scrolling to %q: %w", text, err))
	}
	f.log(ctx).Info("Page contains text.", zap.String("text", text))
	return f.record("page_should_contain", nil)
}

// WaitUntilPageContain waits up to the page-contains budget for text to be
// visible on the page.
func (f *Facade) WaitUntilPageContain(ctx context.Context, text string) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	_, err = f.waitVisible(ctx, d, XPath(PageTextLocator(text)), f.timeouts.PageContains)
	if err != nil {
		return f.record("wait_page_contain", fmt.Errorf("waiting for %q: %w", text, err))
	}
	return f.record("wait_page_contain", nil)
}
