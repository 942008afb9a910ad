// internal/browser/remote.go
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/tebeka/selenium"
	"go.uber.org/zap"
)

// RemoteLauncher opens sessions against a WebDriver endpoint (a Selenium
// server, grid, or a driver binary started with a URL prefix).
type RemoteLauncher struct {
	URL      string
	Attempts int
	logger   *zap.Logger

	// newRemote is selenium.NewRemote; swapped in tests.
	newRemote func(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error)
}

// NewRemoteLauncher creates a launcher for the endpoint at url. attempts
// below one are treated as one.
func NewRemoteLauncher(url string, attempts int, logger *zap.Logger) *RemoteLauncher {
	if attempts < 1 {
		attempts = 1
	}
	return &RemoteLauncher{
		URL:       url,
		Attempts:  attempts,
		logger:    logger.Named("launcher"),
		newRemote: selenium.NewRemote,
	}
}

// Launch dials the endpoint, retrying with exponential backoff while the
// endpoint refuses the new-session request.
func (l *RemoteLauncher) Launch(ctx context.Context, caps selenium.Capabilities) (Driver, error) {
	var wd selenium.WebDriver
	attempt := 0
	rt := retry.NewRetrier(l.Attempts, 250*time.Millisecond, 2*time.Second)
	err := rt.RunContext(ctx, func(ctx context.Context) error {
		attempt++
		var err error
		wd, err = l.newRemote(caps, l.URL)
		if err != nil {
			l.logger.Warn("New session request failed.",
				zap.Int("attempt", attempt),
				zap.String("url", l.URL),
				zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &remoteDriver{wd: wd}, nil
}

// remoteDriver adapts selenium.WebDriver to Driver.
type remoteDriver struct {
	wd selenium.WebDriver
}

var _ Driver = (*remoteDriver)(nil)

// NewRemoteDriver wraps an existing selenium session.
func NewRemoteDriver(wd selenium.WebDriver) Driver {
	return &remoteDriver{wd: wd}
}

func (d *remoteDriver) SetImplicitWait(timeout time.Duration) error {
	return classify(d.wd.SetImplicitWaitTimeout(timeout))
}

// MaximizeWindow maximizes the current window; the empty name selects it.
func (d *remoteDriver) MaximizeWindow() error { return classify(d.wd.MaximizeWindow("")) }
func (d *remoteDriver) Quit() error           { return classify(d.wd.Quit()) }
func (d *remoteDriver) Get(url string) error  { return classify(d.wd.Get(url)) }
func (d *remoteDriver) Back() error           { return classify(d.wd.Back()) }
func (d *remoteDriver) Forward() error        { return classify(d.wd.Forward()) }
func (d *remoteDriver) Refresh() error        { return classify(d.wd.Refresh()) }

func (d *remoteDriver) Title() (string, error) {
	title, err := d.wd.Title()
	return title, classify(err)
}

func (d *remoteDriver) FindElement(by, value string) (Element, error) {
	we, err := d.wd.FindElement(by, value)
	if err != nil {
		return nil, classify(err)
	}
	return &remoteElement{we: we}, nil
}

func (d *remoteDriver) FindElements(by, value string) ([]Element, error) {
	wes, err := d.wd.FindElements(by, value)
	if err != nil {
		return nil, classify(err)
	}
	return wrapElements(wes), nil
}

func (d *remoteDriver) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	res, err := d.wd.ExecuteScript(script, unwrapArgs(args))
	return res, classify(err)
}

func (d *remoteDriver) ExecuteScriptElement(script string, args ...interface{}) (Element, error) {
	raw, err := d.wd.ExecuteScriptRaw(script, unwrapArgs(args))
	if err != nil {
		return nil, classify(err)
	}
	if isNullValue(raw) {
		return nil, nil
	}
	we, err := d.wd.DecodeElement(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: script did not return an element: %v", ErrScriptFailed, err)
	}
	return &remoteElement{we: we}, nil
}

func (d *remoteDriver) AcceptAlert() error  { return classify(d.wd.AcceptAlert()) }
func (d *remoteDriver) DismissAlert() error { return classify(d.wd.DismissAlert()) }

func (d *remoteDriver) AlertText() (string, error) {
	text, err := d.wd.AlertText()
	return text, classify(err)
}

func (d *remoteDriver) SetAlertText(text string) error {
	return classify(d.wd.SetAlertText(text))
}

func (d *remoteDriver) WindowHandles() ([]string, error) {
	handles, err := d.wd.WindowHandles()
	return handles, classify(err)
}

func (d *remoteDriver) CurrentWindowHandle() (string, error) {
	handle, err := d.wd.CurrentWindowHandle()
	return handle, classify(err)
}

func (d *remoteDriver) SwitchWindow(name string) error {
	return classify(d.wd.SwitchWindow(name))
}

// NewWindow opens a tab or window through window.open and reports the handle
// that appeared. The selenium client has no New Window command.
func (d *remoteDriver) NewWindow(kind WindowType) (string, error) {
	before, err := d.wd.WindowHandles()
	if err != nil {
		return "", classify(err)
	}
	script := "window.open('about:blank', '_blank');"
	if kind == WindowTypeWindow {
		script = "window.open('about:blank', '_blank', 'popup=yes');"
	}
	if _, err := d.wd.ExecuteScript(script, nil); err != nil {
		return "", classify(err)
	}
	after, err := d.wd.WindowHandles()
	if err != nil {
		return "", classify(err)
	}
	known := make(map[string]struct{}, len(before))
	for _, h := range before {
		known[h] = struct{}{}
	}
	for _, h := range after {
		if _, ok := known[h]; !ok {
			return h, nil
		}
	}
	return "", fmt.Errorf("%w: no new window handle after window.open (popup blocked?)", ErrInteractionFailed)
}

// CloseWindow closes the current window.
func (d *remoteDriver) CloseWindow() error { return classify(d.wd.Close()) }

func (d *remoteDriver) Screenshot() ([]byte, error) {
	png, err := d.wd.Screenshot()
	return png, classify(err)
}

// PerformKeys presses and releases each key in turn on the active element.
// Each press completes before the next is sent.
func (d *remoteDriver) PerformKeys(keys ...string) error {
	for _, k := range keys {
		if err := d.wd.KeyDown(k); err != nil {
			return classify(err)
		}
		if err := d.wd.KeyUp(k); err != nil {
			return classify(err)
		}
	}
	return nil
}

// remoteElement adapts selenium.WebElement to Element.
type remoteElement struct {
	we selenium.WebElement
}

func (e *remoteElement) Click() error               { return classify(e.we.Click()) }
func (e *remoteElement) Clear() error               { return classify(e.we.Clear()) }
func (e *remoteElement) SendKeys(text string) error { return classify(e.we.SendKeys(text)) }

func (e *remoteElement) Text() (string, error) {
	text, err := e.we.Text()
	return text, classify(err)
}

func (e *remoteElement) GetAttribute(name string) (string, error) {
	v, err := e.we.GetAttribute(name)
	return v, classify(err)
}

func (e *remoteElement) IsEnabled() (bool, error) {
	ok, err := e.we.IsEnabled()
	return ok, classify(err)
}

func (e *remoteElement) IsDisplayed() (bool, error) {
	ok, err := e.we.IsDisplayed()
	return ok, classify(err)
}

func (e *remoteElement) IsSelected() (bool, error) {
	ok, err := e.we.IsSelected()
	return ok, classify(err)
}

func (e *remoteElement) TagName() (string, error) {
	name, err := e.we.TagName()
	return name, classify(err)
}

func (e *remoteElement) FindElements(by, value string) ([]Element, error) {
	wes, err := e.we.FindElements(by, value)
	if err != nil {
		return nil, classify(err)
	}
	return wrapElements(wes), nil
}

func wrapElements(wes []selenium.WebElement) []Element {
	out := make([]Element, len(wes))
	for i, we := range wes {
		out[i] = &remoteElement{we: we}
	}
	return out
}

// unwrapArgs swaps Element wrappers for the selenium elements they hold so
// they marshal as W3C element references.
func unwrapArgs(args []interface{}) []interface{} {
	out := make([]interface{}, len(args))
	for i, a := range args {
		if re, ok := a.(*remoteElement); ok {
			out[i] = re.we
			continue
		}
		out[i] = a
	}
	return out
}

func isNullValue(raw []byte) bool {
	var reply struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return false
	}
	return len(reply.Value) == 0 || string(reply.Value) == "null"
}

// classify maps W3C WebDriver error codes onto the package taxonomy while
// keeping the original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se *selenium.Error
	if !errors.As(err, &se) {
		return err
	}
	var kind error
	switch se.Err {
	case "no such element", "no such window", "no such frame", "no such shadow root":
		kind = ErrNotFound
	case "no such alert":
		kind = ErrAlertMissing
	case "unexpected alert open":
		kind = ErrUnhandledAlert
	case "javascript error":
		kind = ErrScriptFailed
	case "element click intercepted", "element not interactable", "invalid element state", "element not selectable":
		kind = ErrInteractionFailed
	case "stale element reference":
		kind = ErrStaleElement
	case "timeout", "script timeout":
		kind = ErrWaitTimeout
	case "session not created":
		kind = ErrSessionInitFailed
	default:
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
