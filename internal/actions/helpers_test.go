// internal/actions/helpers_test.go
package actions_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/webpilot/internal/actions"
	"github.com/xkilldash9x/webpilot/internal/browser"
	"github.com/xkilldash9x/webpilot/internal/diagnostics"
	"github.com/xkilldash9x/webpilot/internal/mocks"
	"github.com/xkilldash9x/webpilot/internal/observability"
)

var shotTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)

// fastTimeouts keep the wait-driven tests well under a second each.
var fastTimeouts = actions.Timeouts{
	Explicit:     300 * time.Millisecond,
	PageContains: 400 * time.Millisecond,
	ClickProbe:   250 * time.Millisecond,
	PollInterval: 20 * time.Millisecond,
}

type harness struct {
	ctx      context.Context
	facade   *actions.Facade
	registry *browser.Registry
	browser  *mocks.FakeBrowser
	shots    *diagnostics.Screenshotter
	fs       afero.Fs
	logs     *observer.ObservedLogs
	metrics  *observability.Metrics
	stdout   *bytes.Buffer
}

func newHarness(t *testing.T, timeouts actions.Timeouts) *harness {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	launcher := &mocks.FakeLauncher{}
	registry := browser.NewRegistry(launcher, browser.DefaultRegistryOptions(), logger)
	ctx := browser.WithWorker(context.Background(), browser.WorkerID(t.Name()))
	_, err := registry.Acquire(ctx, browser.Chrome)
	require.NoError(t, err)
	t.Cleanup(func() { _ = registry.Release(ctx) })

	fs := afero.NewMemMapFs()
	stdout := &bytes.Buffer{}
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	shots := diagnostics.NewScreenshotter("/proj", logger,
		diagnostics.WithFs(fs),
		diagnostics.WithClock(func() time.Time { return shotTime }),
		diagnostics.WithOutput(stdout, &bytes.Buffer{}),
		diagnostics.WithMetrics(metrics))

	facade := actions.New(registry, shots, logger,
		actions.WithTimeouts(timeouts),
		actions.WithMetrics(metrics))

	return &harness{
		ctx:      ctx,
		facade:   facade,
		registry: registry,
		browser:  launcher.Last(),
		shots:    shots,
		fs:       fs,
		logs:     logs,
		metrics:  metrics,
		stdout:   stdout,
	}
}

// screenshots returns the file names written under the screenshot directory.
func (h *harness) screenshots(t *testing.T) []string {
	t.Helper()
	entries, err := afero.ReadDir(h.fs, filepath.Join(h.shots.Root(), diagnostics.Dir))
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func (h *harness) hasScreenshot(t *testing.T, label string) bool {
	t.Helper()
	for _, name := range h.screenshots(t) {
		if strings.HasPrefix(name, label+"_") {
			return true
		}
	}
	return false
}

func (h *harness) scriptsContaining(fragment string) int {
	n := 0
	for _, c := range h.browser.Scripts() {
		if strings.Contains(c.Script, fragment) {
			n++
		}
	}
	return n
}
