// internal/browser/kind.go
package browser

import (
	"strings"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

// LaunchOptions are the process-level flags applied to every new session.
type LaunchOptions struct {
	// Incognito adds the private-browsing argument of the chosen kind.
	Incognito bool
}

// Kind is a supported browser. Each kind builds its own argument list and
// WebDriver capabilities, so there is no fallthrough case to get wrong.
type Kind interface {
	// Name is the lower-case configuration name (chrome, edge, firefox).
	Name() string
	// Arguments returns the command-line switches passed to the browser.
	Arguments(opts LaunchOptions) []string
	// Capabilities returns the new-session capability dictionary.
	Capabilities(opts LaunchOptions) selenium.Capabilities
}

var (
	Chrome  Kind = chromeKind{}
	Edge    Kind = edgeKind{}
	Firefox Kind = firefoxKind{}
)

// ParseKind maps a configuration value to a Kind. Blank input is Chrome.
// Unknown names also yield Chrome, with ok reporting false so the caller can warn.
func ParseKind(name string) (k Kind, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "chrome":
		return Chrome, true
	case "edge":
		return Edge, true
	case "firefox":
		return Firefox, true
	default:
		return Chrome, false
	}
}

type chromeKind struct{}

func (chromeKind) Name() string { return "chrome" }

func (chromeKind) Arguments(opts LaunchOptions) []string {
	var args []string
	if opts.Incognito {
		args = append(args, "--incognito")
	}
	return append(args, "--disable-notifications")
}

func (k chromeKind) Capabilities(opts LaunchOptions) selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(chrome.Capabilities{Args: k.Arguments(opts), W3C: true})
	return caps
}

type edgeKind struct{}

func (edgeKind) Name() string { return "edge" }

func (edgeKind) Arguments(opts LaunchOptions) []string {
	if opts.Incognito {
		return []string{"--inprivate"}
	}
	return nil
}

// edgeOptionsKey is the vendor capability msedgedriver reads its switches from.
const edgeOptionsKey = "ms:edgeOptions"

func (k edgeKind) Capabilities(opts LaunchOptions) selenium.Capabilities {
	args := k.Arguments(opts)
	if args == nil {
		args = []string{}
	}
	caps := selenium.Capabilities{"browserName": "MicrosoftEdge"}
	caps[edgeOptionsKey] = map[string]interface{}{"args": args}
	return caps
}

type firefoxKind struct{}

func (firefoxKind) Name() string { return "firefox" }

func (firefoxKind) Arguments(opts LaunchOptions) []string {
	if opts.Incognito {
		return []string{"-private"}
	}
	return nil
}

func (k firefoxKind) Capabilities(opts LaunchOptions) selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": "firefox"}
	caps.AddFirefox(firefox.Capabilities{Args: k.Arguments(opts)})
	return caps
}
