// internal/actions/facade.go
package actions

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/webpilot/internal/browser"
	"github.com/xkilldash9x/webpilot/internal/config"
	"github.com/xkilldash9x/webpilot/internal/diagnostics"
	"github.com/xkilldash9x/webpilot/internal/observability"
)

// Screenshot labels written on the failure branches.
const (
	LabelFindError      = "Error_finding_WebElement"
	LabelClickError     = "Error_Occured_during_click"
	LabelSelectionError = "selection_error"
	LabelAlertMissing   = "Alert_Not_Present"
	LabelUnhandledAlert = "Unhandled_Alert"
)

// Timeouts are the wait budgets used by the facade.
type Timeouts struct {
	Explicit     time.Duration
	PageContains time.Duration
	ClickProbe   time.Duration
	PollInterval time.Duration
}

// DefaultTimeouts returns 30s explicit waits, 40s page-contains waits,
// a 10s clickability probe and 500ms polling.
func DefaultTimeouts() Timeouts {
	return TimeoutsFromConfig(config.NewDefaultConfig().Waits())
}

// TimeoutsFromConfig copies the wait section of the configuration.
func TimeoutsFromConfig(cfg config.WaitsConfig) Timeouts {
	return Timeouts{
		Explicit:     cfg.Explicit,
		PageContains: cfg.PageContains,
		ClickProbe:   cfg.ClickProbe,
		PollInterval: cfg.PollInterval,
	}
}

// Sessions resolves the session bound to the worker in ctx.
type Sessions interface {
	Require(ctx context.Context) (*browser.Session, error)
}

// Facade drives the worker's browser. It holds no per-call state: every
// operation looks up the worker's session, borrows its driver and returns.
// Concurrent use from different workers is safe; a single worker must issue
// its operations sequentially.
type Facade struct {
	sessions Sessions
	shots    *diagnostics.Screenshotter
	timeouts Timeouts
	logger   *zap.Logger
	metrics  *observability.Metrics
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option configures a Facade.
type Option func(*Facade)

// WithTimeouts overrides the wait budgets.
func WithTimeouts(t Timeouts) Option {
	return func(f *Facade) { f.timeouts = t }
}

// WithMetrics records actions and wait durations.
func WithMetrics(m *observability.Metrics) Option {
	return func(f *Facade) { f.metrics = m }
}

// New creates a facade over sessions that writes diagnostics through shots.
func New(sessions Sessions, shots *diagnostics.Screenshotter, logger *zap.Logger, opts ...Option) *Facade {
	f := &Facade{
		sessions: sessions,
		shots:    shots,
		timeouts: DefaultTimeouts(),
		logger:   logger.Named("actions"),
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.timeouts.PollInterval <= 0 {
		f.timeouts.PollInterval = 500 * time.Millisecond
	}
	return f
}

// Timeouts returns the budgets in effect.
func (f *Facade) Timeouts() Timeouts { return f.timeouts }

// driver returns the worker's control channel or ErrNoSession.
func (f *Facade) driver(ctx context.Context) (browser.Driver, error) {
	s, err := f.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}
	return s.Driver(), nil
}

// log returns the facade logger tagged with the worker in ctx.
func (f *Facade) log(ctx context.Context) *zap.Logger {
	return f.logger.With(zap.String("worker", string(browser.WorkerFrom(ctx))))
}

// snapshot captures a diagnostic screenshot from d. It never fails.
func (f *Facade) snapshot(d browser.Driver, label string) string {
	if f.shots == nil {
		return ""
	}
	if d == nil {
		return f.shots.Capture(nil, label)
	}
	return f.shots.Capture(d, label)
}

// record counts a verb outcome and passes err through.
func (f *Facade) record(verb string, err error) error {
	if err != nil {
		f.metrics.Action(verb, "error")
	} else {
		f.metrics.Action(verb, "ok")
	}
	return err
}

// CaptureScreenshot stores a screenshot of the worker's browser under label
// and returns its path. Failures, including a missing session, are logged and
// yield "".
func (f *Facade) CaptureScreenshot(ctx context.Context, label string) string {
	d, err := f.driver(ctx)
	if err != nil {
		f.log(ctx).Warn("Screenshot requested without a session.", zap.String("label", label), zap.Error(err))
	}
	path := f.snapshot(d, label)
	if path == "" {
		f.metrics.Action("capture_screenshot", "swallowed")
	} else {
		f.metrics.Action("capture_screenshot", "ok")
	}
	return path
}
