// internal/fixture/fixture.go
package fixture

import (
	"context"
	"os"
	"testing"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

// EnvBrowser and EnvBrowserLegacy name the browser parameter. The prefixed
// form wins when both are set.
const (
	EnvBrowser       = "WEBPILOT_BROWSER"
	EnvBrowserLegacy = "browser"
)

// Acquirer is the part of browser.Registry the fixture uses.
type Acquirer interface {
	Acquire(ctx context.Context, kind browser.Kind) (*browser.Session, error)
	Release(ctx context.Context) error
}

// Browser binds a session of the given kind to a worker named after the test
// and releases it when the test ends. The returned context carries the
// worker; pass it to every facade call made by the test.
func Browser(tb testing.TB, reg Acquirer, kind browser.Kind) context.Context {
	tb.Helper()

	ctx := browser.WithWorker(context.Background(), browser.WorkerID(tb.Name()))
	if _, err := reg.Acquire(ctx, kind); err != nil {
		tb.Fatalf("browser session could not be started: %v", err)
	}
	tb.Cleanup(func() {
		if err := reg.Release(ctx); err != nil {
			tb.Logf("releasing browser session: %v", err)
		}
	})
	return ctx
}

// KindFromEnv reads the browser parameter from the environment. Missing or
// unknown values yield Chrome.
func KindFromEnv() browser.Kind {
	name := os.Getenv(EnvBrowser)
	if name == "" {
		name = os.Getenv(EnvBrowserLegacy)
	}
	kind, _ := browser.ParseKind(name)
	return kind
}
