// internal/browser/driver.go
package browser

import (
	"context"
	"time"

	"github.com/tebeka/selenium"
)

// WindowType selects what NewWindow opens.
type WindowType string

const (
	WindowTypeTab    WindowType = "tab"
	WindowTypeWindow WindowType = "window"
)

// Key values understood by PerformKeys. They are the WebDriver code points
// for the named keys.
const (
	KeyPageDown   = selenium.PageDownKey
	KeyPageUp     = selenium.PageUpKey
	KeyLeftArrow  = selenium.LeftArrowKey
	KeyRightArrow = selenium.RightArrowKey
	KeyEnter      = selenium.EnterKey
)

// Driver is the subset of the WebDriver protocol the facade consumes. The
// production implementation wraps a remote selenium session; tests use a fake.
// All errors are classified into this package's taxonomy.
type Driver interface {
	SetImplicitWait(d time.Duration) error
	MaximizeWindow() error
	Quit() error

	Get(url string) error
	Back() error
	Forward() error
	Refresh() error
	Title() (string, error)

	FindElement(by, value string) (Element, error)
	FindElements(by, value string) ([]Element, error)

	// ExecuteScript runs script with arguments[i] bound to args[i]. Element
	// arguments are passed as DOM references.
	ExecuteScript(script string, args ...interface{}) (interface{}, error)
	// ExecuteScriptElement runs script and decodes its result as an element.
	// A null result returns (nil, nil).
	ExecuteScriptElement(script string, args ...interface{}) (Element, error)

	AcceptAlert() error
	DismissAlert() error
	AlertText() (string, error)
	SetAlertText(text string) error

	WindowHandles() ([]string, error)
	CurrentWindowHandle() (string, error)
	SwitchWindow(nameOrHandle string) error
	// NewWindow opens a tab or window and returns its handle without switching.
	NewWindow(kind WindowType) (string, error)
	// CloseWindow closes the active window.
	CloseWindow() error

	Screenshot() ([]byte, error)
	// PerformKeys dispatches one key-down/key-up pair per key through the
	// keyboard actions API and waits for the dispatch to complete.
	PerformKeys(keys ...string) error
}

// Element is an opaque reference to a remote DOM node. It goes stale when the
// page navigates or the node detaches.
type Element interface {
	Click() error
	Clear() error
	SendKeys(text string) error
	Text() (string, error)
	GetAttribute(name string) (string, error)
	IsEnabled() (bool, error)
	IsDisplayed() (bool, error)
	IsSelected() (bool, error)
	TagName() (string, error)
	FindElements(by, value string) ([]Element, error)
}

// Launcher opens a new browser control channel from a capability dictionary.
type Launcher interface {
	Launch(ctx context.Context, caps selenium.Capabilities) (Driver, error)
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ctx context.Context, caps selenium.Capabilities) (Driver, error)

func (f LauncherFunc) Launch(ctx context.Context, caps selenium.Capabilities) (Driver, error) {
	return f(ctx, caps)
}
