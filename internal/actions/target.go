// internal/actions/target.go
package actions

import (
	"context"
	"fmt"

	"github.com/tebeka/selenium"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

// Target is either an XPath expression or an element the caller already
// holds. Verbs resolve it once, at the start of the call.
type Target struct {
	xpath   string
	element browser.Element
}

// XPath targets the first element matching expr.
func XPath(expr string) Target { return Target{xpath: expr} }

// Elem targets an element resolved earlier.
func Elem(el browser.Element) Target { return Target{element: el} }

// IsXPath reports whether t still needs resolving.
func (t Target) IsXPath() bool { return t.element == nil }

func (t Target) String() string {
	if t.element != nil {
		return "element"
	}
	return "xpath=" + t.xpath
}

// probe returns the element t designates right now, or ErrNotFound.
func (t Target) probe(d browser.Driver) (browser.Element, error) {
	if t.element != nil {
		return t.element, nil
	}
	els, err := d.FindElements(selenium.ByXPATH, t.xpath)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", browser.ErrNotFound, t)
	}
	return els[0], nil
}

// resolve waits until t is visible and returns the element.
func (f *Facade) resolve(ctx context.Context, d browser.Driver, t Target) (browser.Element, error) {
	return f.waitVisible(ctx, d, t, f.timeouts.Explicit)
}
