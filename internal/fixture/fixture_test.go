// internal/fixture/fixture_test.go
package fixture_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/webpilot/internal/browser"
	"github.com/xkilldash9x/webpilot/internal/fixture"
	"github.com/xkilldash9x/webpilot/internal/mocks"
)

func TestBrowserBindsAndReleases(t *testing.T) {
	launcher := &mocks.FakeLauncher{}
	reg := browser.NewRegistry(launcher, browser.DefaultRegistryOptions(), zaptest.NewLogger(t))

	var ctx context.Context
	t.Run("Inner", func(t *testing.T) {
		ctx = fixture.Browser(t, reg, browser.Firefox)
		assert.Equal(t, browser.WorkerID(t.Name()), browser.WorkerFrom(ctx))

		s, ok := reg.Current(ctx)
		require.True(t, ok)
		assert.Equal(t, "firefox", s.Kind().Name())
	})

	_, ok := reg.Current(ctx)
	assert.False(t, ok, "the session is released when the test ends")
	require.Len(t, launcher.Launched(), 1)
	assert.Equal(t, 1, launcher.Last().QuitCount)
}

// recordingTB captures Fatalf without stopping the outer test.
type recordingTB struct {
	testing.TB
	fatal string
}

func (r *recordingTB) Helper()      {}
func (r *recordingTB) Name() string { return "recording" }
func (r *recordingTB) Fatalf(format string, args ...any) {
	r.fatal = format
}
func (r *recordingTB) Cleanup(func()) {}

func TestBrowserLaunchFailureFailsTest(t *testing.T) {
	launcher := new(mocks.MockLauncher)
	launcher.On("Launch", mock.Anything, mock.Anything).Return(nil, errors.New("no driver"))
	reg := browser.NewRegistry(launcher, browser.DefaultRegistryOptions(), zaptest.NewLogger(t))

	rec := &recordingTB{TB: t}
	fixture.Browser(rec, reg, browser.Chrome)
	assert.Contains(t, rec.fatal, "could not be started")
}

func TestKindFromEnv(t *testing.T) {
	t.Setenv(fixture.EnvBrowser, "")
	t.Setenv(fixture.EnvBrowserLegacy, "")
	assert.Equal(t, browser.Chrome, fixture.KindFromEnv())

	t.Setenv(fixture.EnvBrowserLegacy, "edge")
	assert.Equal(t, browser.Edge, fixture.KindFromEnv())

	t.Setenv(fixture.EnvBrowser, "firefox")
	assert.Equal(t, browser.Firefox, fixture.KindFromEnv())

	t.Setenv(fixture.EnvBrowser, "netscape")
	assert.Equal(t, browser.Chrome, fixture.KindFromEnv())
}
