// File: internal/mocks/fake_element.go
package mocks

import (
	"fmt"
	"sync"
	"time"

	"github.com/tebeka/selenium"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

// FakeElement is an in-memory browser.Element. Configure the exported fields
// before handing the element to a FakeBrowser.
type FakeElement struct {
	Tag      string
	Label    string
	Attrs    map[string]string
	Hidden   bool
	Disabled bool
	Selected bool
	// AppearAt hides the element from lookups until the given instant.
	AppearAt time.Time
	// VanishAt stops the element from being displayed from the given instant on.
	VanishAt time.Time
	// Stale makes every call fail with browser.ErrStaleElement.
	Stale bool
	// ClickErr fails both native and scripted clicks.
	ClickErr error
	// ProbeErr fails IsDisplayed and IsEnabled.
	ProbeErr error
	// Options are returned for a tag-name lookup of "option".
	Options []*FakeElement

	mu           sync.Mutex
	clicks       int
	scriptClicks int
	scrolled     int
	highlighted  bool
	value        string
}

var _ browser.Element = (*FakeElement)(nil)

// NewFakeElement returns a visible, enabled element with the given tag and text.
func NewFakeElement(tag, text string) *FakeElement {
	return &FakeElement{Tag: tag, Label: text, Attrs: map[string]string{}}
}

// NewFakeSelect returns a select element with one option per value.
func NewFakeSelect(values ...string) *FakeElement {
	sel := NewFakeElement("select", "")
	for _, v := range values {
		opt := NewFakeElement("option", v)
		opt.Attrs["value"] = v
		sel.Options = append(sel.Options, opt)
	}
	return sel
}

func (e *FakeElement) attached() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.AppearAt.IsZero() || !time.Now().Before(e.AppearAt)
}

func (e *FakeElement) check() error {
	if e.Stale {
		return fmt.Errorf("%w: element detached", browser.ErrStaleElement)
	}
	return nil
}

func (e *FakeElement) displayed() bool {
	if e.Hidden {
		return false
	}
	if !e.AppearAt.IsZero() && time.Now().Before(e.AppearAt) {
		return false
	}
	return e.VanishAt.IsZero() || time.Now().Before(e.VanishAt)
}

func (e *FakeElement) scriptClick() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(); err != nil {
		return err
	}
	if e.ClickErr != nil {
		return e.ClickErr
	}
	e.scriptClicks++
	return nil
}

// Clicks returns the number of native clicks.
func (e *FakeElement) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

// ScriptClicks returns the number of scripted clicks.
func (e *FakeElement) ScriptClicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scriptClicks
}

// Scrolled returns how many times the element was scrolled into view.
func (e *FakeElement) Scrolled() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrolled
}

// Highlighted reports whether the highlight border was applied.
func (e *FakeElement) Highlighted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.highlighted
}

// Value returns the text typed into the element.
func (e *FakeElement) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

// IsChosen reports the selection state without going through the Element API.
func (e *FakeElement) IsChosen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Selected
}

func (e *FakeElement) Click() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(); err != nil {
		return err
	}
	if e.ClickErr != nil {
		return e.ClickErr
	}
	if !e.displayed() || e.Disabled {
		return fmt.Errorf("%w: element not interactable", browser.ErrInteractionFailed)
	}
	e.clicks++
	if e.Tag == "option" {
		e.Selected = true
	}
	return nil
}

func (e *FakeElement) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(); err != nil {
		return err
	}
	e.value = ""
	return nil
}

func (e *FakeElement) SendKeys(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(); err != nil {
		return err
	}
	if e.Disabled {
		return fmt.Errorf("%w: element not interactable", browser.ErrInteractionFailed)
	}
	e.value += text
	return nil
}

func (e *FakeElement) Text() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(); err != nil {
		return "", err
	}
	return e.Label, nil
}

func (e *FakeElement) GetAttribute(name string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(); err != nil {
		return "", err
	}
	if name == "value" && e.value != "" {
		return e.value, nil
	}
	return e.Attrs[name], nil
}

func (e *FakeElement) IsEnabled() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(); err != nil {
		return false, err
	}
	if e.ProbeErr != nil {
		return false, e.ProbeErr
	}
	return !e.Disabled, nil
}

func (e *FakeElement) IsDisplayed() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(); err != nil {
		return false, err
	}
	if e.ProbeErr != nil {
		return false, e.ProbeErr
	}
	return e.displayed(), nil
}

func (e *FakeElement) IsSelected() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(); err != nil {
		return false, err
	}
	return e.Selected, nil
}

func (e *FakeElement) TagName() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(); err != nil {
		return "", err
	}
	return e.Tag, nil
}

func (e *FakeElement) FindElements(by, value string) ([]browser.Element, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(); err != nil {
		return nil, err
	}
	if by != selenium.ByTagName || value != "option" {
		return nil, nil
	}
	out := make([]browser.Element, 0, len(e.Options))
	for _, o := range e.Options {
		out = append(out, o)
	}
	return out, nil
}
