// File: internal/mocks/fake_browser.go
package mocks

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tebeka/selenium"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

// FakePNG is the payload returned by FakeBrowser.Screenshot.
var FakePNG = []byte("\x89PNG\r\n\x1a\nfake")

// ScriptCall records one scripted evaluation.
type ScriptCall struct {
	Script string
	Args   []interface{}
}

// FakeBrowser is an in-memory browser.Driver. Elements are registered per
// (strategy, value) pair; scripts the facade issues are interpreted by
// substring so tests can observe their effects.
type FakeBrowser struct {
	mu sync.Mutex

	Caps         selenium.Capabilities
	ImplicitWait time.Duration
	Maximized    bool
	QuitCount    int
	QuitErr      error
	MaximizeErr  error

	// ScriptErr, when set, fails every scripted evaluation.
	ScriptErr error
	// ScreenshotErr, when set, fails Screenshot.
	ScreenshotErr error
	// AlertErr, when set, is returned by AlertText.
	AlertErr error

	history []string
	pos     int
	title   string

	elements map[string][]*FakeElement
	shadow   map[string]*FakeElement
	scripts  []ScriptCall
	scrolls  [][2]int

	alertText   *string
	alertAt     time.Time
	alertInput  string
	alertClosed []string

	handles []string
	current string
	nextWin int

	keys []string
}

var _ browser.Driver = (*FakeBrowser)(nil)

// NewFakeBrowser returns a browser with one window and an empty history.
func NewFakeBrowser() *FakeBrowser {
	return &FakeBrowser{
		elements: make(map[string][]*FakeElement),
		shadow:   make(map[string]*FakeElement),
		handles:  []string{"w0"},
		current:  "w0",
		nextWin:  1,
		pos:      -1,
	}
}

func elementKey(by, value string) string { return by + "|" + value }

// AddElement registers el under the given WebDriver strategy and value.
func (b *FakeBrowser) AddElement(by, value string, els ...*FakeElement) {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := elementKey(by, value)
	b.elements[k] = append(b.elements[k], els...)
}

// AddXPath registers el under an XPath expression.
func (b *FakeBrowser) AddXPath(xpath string, els ...*FakeElement) {
	b.AddElement(selenium.ByXPATH, xpath, els...)
}

// AddShadow registers el as the result of a shadow-root query.
func (b *FakeBrowser) AddShadow(hostCSS, innerCSS string, el *FakeElement) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shadow[hostCSS+"|"+innerCSS] = el
}

// SetTitle sets the page title.
func (b *FakeBrowser) SetTitle(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title = title
}

// OpenAlert shows an alert immediately.
func (b *FakeBrowser) OpenAlert(text string) { b.OpenAlertAt(text, time.Time{}) }

// OpenAlertAt shows an alert from the given instant on.
func (b *FakeBrowser) OpenAlertAt(text string, at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alertText = &text
	b.alertAt = at
}

// AlertInput returns the text typed into the last prompt.
func (b *FakeBrowser) AlertInput() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alertInput
}

// AlertsClosed returns "accept" or "dismiss" for every closed alert.
func (b *FakeBrowser) AlertsClosed() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.alertClosed...)
}

// Scripts returns the scripted evaluations issued so far.
func (b *FakeBrowser) Scripts() []ScriptCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ScriptCall(nil), b.scripts...)
}

// Scrolls returns the (x, y) pairs passed to window.scrollBy.
func (b *FakeBrowser) Scrolls() [][2]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][2]int(nil), b.scrolls...)
}

// Keys returns every key dispatched through PerformKeys, in order.
func (b *FakeBrowser) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.keys...)
}

// URL returns the current history entry.
func (b *FakeBrowser) URL() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pos < 0 {
		return ""
	}
	return b.history[b.pos]
}

// Handles returns the open window handles.
func (b *FakeBrowser) Handles() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.handles...)
}

// Current returns the active window handle.
func (b *FakeBrowser) Current() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// -- browser.Driver --

func (b *FakeBrowser) SetImplicitWait(d time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ImplicitWait = d
	return nil
}

func (b *FakeBrowser) MaximizeWindow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.MaximizeErr != nil {
		return b.MaximizeErr
	}
	b.Maximized = true
	return nil
}

func (b *FakeBrowser) Quit() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.QuitCount++
	return b.QuitErr
}

func (b *FakeBrowser) Get(url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = append(b.history[:b.pos+1], url)
	b.pos = len(b.history) - 1
	return nil
}

func (b *FakeBrowser) Back() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pos > 0 {
		b.pos--
	}
	return nil
}

func (b *FakeBrowser) Forward() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pos < len(b.history)-1 {
		b.pos++
	}
	return nil
}

func (b *FakeBrowser) Refresh() error { return nil }

func (b *FakeBrowser) Title() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.title, nil
}

func (b *FakeBrowser) FindElement(by, value string) (browser.Element, error) {
	els, _ := b.FindElements(by, value)
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s=%s", browser.ErrNotFound, by, value)
	}
	return els[0], nil
}

func (b *FakeBrowser) FindElements(by, value string) ([]browser.Element, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []browser.Element
	for _, el := range b.elements[elementKey(by, value)] {
		if el.attached() {
			out = append(out, el)
		}
	}
	return out, nil
}

func (b *FakeBrowser) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	b.mu.Lock()
	b.scripts = append(b.scripts, ScriptCall{Script: script, Args: args})
	scriptErr := b.ScriptErr
	b.mu.Unlock()

	if scriptErr != nil {
		return nil, scriptErr
	}

	var el *FakeElement
	if len(args) > 0 {
		el, _ = args[0].(*FakeElement)
	}

	switch {
	case strings.Contains(script, "window.history.back"):
		return nil, b.Back()
	case strings.Contains(script, "window.history.forward"):
		return nil, b.Forward()
	case strings.Contains(script, "window.scrollBy"):
		x, _ := args[0].(int)
		y, _ := args[1].(int)
		b.mu.Lock()
		b.scrolls = append(b.scrolls, [2]int{x, y})
		b.mu.Unlock()
	case el != nil && strings.Contains(script, ".click()"):
		return nil, el.scriptClick()
	case el != nil && strings.Contains(script, "scrollIntoView"):
		el.mu.Lock()
		el.scrolled++
		el.mu.Unlock()
	case el != nil && strings.Contains(script, "style.border"):
		el.mu.Lock()
		el.highlighted = true
		el.mu.Unlock()
	}
	return nil, nil
}

func (b *FakeBrowser) ExecuteScriptElement(script string, args ...interface{}) (browser.Element, error) {
	b.mu.Lock()
	b.scripts = append(b.scripts, ScriptCall{Script: script, Args: args})
	scriptErr := b.ScriptErr
	b.mu.Unlock()
	if scriptErr != nil {
		return nil, scriptErr
	}
	if len(args) < 2 {
		return nil, nil
	}
	host, _ := args[0].(string)
	inner, _ := args[1].(string)
	b.mu.Lock()
	el, ok := b.shadow[host+"|"+inner]
	b.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return el, nil
}

func (b *FakeBrowser) alertOpen() bool {
	return b.alertText != nil && !time.Now().Before(b.alertAt)
}

func (b *FakeBrowser) closeAlert(how string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alertOpen() {
		return fmt.Errorf("%w: no alert open", browser.ErrAlertMissing)
	}
	b.alertText = nil
	b.alertClosed = append(b.alertClosed, how)
	return nil
}

func (b *FakeBrowser) AcceptAlert() error  { return b.closeAlert("accept") }
func (b *FakeBrowser) DismissAlert() error { return b.closeAlert("dismiss") }

func (b *FakeBrowser) AlertText() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.AlertErr != nil {
		return "", b.AlertErr
	}
	if !b.alertOpen() {
		return "", fmt.Errorf("%w: no alert open", browser.ErrAlertMissing)
	}
	return *b.alertText, nil
}

func (b *FakeBrowser) SetAlertText(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alertOpen() {
		return fmt.Errorf("%w: no alert open", browser.ErrAlertMissing)
	}
	b.alertInput = text
	return nil
}

func (b *FakeBrowser) WindowHandles() ([]string, error) { return b.Handles(), nil }

func (b *FakeBrowser) CurrentWindowHandle() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == "" {
		return "", fmt.Errorf("%w: current window closed", browser.ErrNotFound)
	}
	return b.current, nil
}

func (b *FakeBrowser) SwitchWindow(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, h := range b.handles {
		if h == name {
			b.current = h
			return nil
		}
	}
	return fmt.Errorf("%w: window %q", browser.ErrNotFound, name)
}

func (b *FakeBrowser) NewWindow(kind browser.WindowType) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h := fmt.Sprintf("w%d", b.nextWin)
	b.nextWin++
	b.handles = append(b.handles, h)
	return h, nil
}

func (b *FakeBrowser) CloseWindow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, h := range b.handles {
		if h == b.current {
			b.handles = append(b.handles[:i], b.handles[i+1:]...)
			b.current = ""
			return nil
		}
	}
	return fmt.Errorf("%w: no current window", browser.ErrNotFound)
}

func (b *FakeBrowser) Screenshot() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ScreenshotErr != nil {
		return nil, b.ScreenshotErr
	}
	return append([]byte(nil), FakePNG...), nil
}

func (b *FakeBrowser) PerformKeys(keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.keys = append(b.keys, keys...)
	return nil
}
