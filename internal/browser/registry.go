// internal/browser/registry.go
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/webpilot/internal/observability"
)

// DefaultImplicitWait is the element-lookup floor set on every new session.
const DefaultImplicitWait = 10 * time.Second

// RegistryOptions configures how the Registry prepares new sessions.
type RegistryOptions struct {
	Launch       LaunchOptions
	ImplicitWait time.Duration
	Maximize     bool
	Metrics      *observability.Metrics
}

// DefaultRegistryOptions returns incognito launches, a 10s implicit wait and
// maximized windows.
func DefaultRegistryOptions() RegistryOptions {
	return RegistryOptions{
		Launch:       LaunchOptions{Incognito: true},
		ImplicitWait: DefaultImplicitWait,
		Maximize:     true,
	}
}

// Registry owns at most one Session per worker. Workers never share a
// session and never wait on each other's browser I/O; the mutex guards the
// map only.
type Registry struct {
	launcher Launcher
	opts     RegistryOptions
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[WorkerID]*Session
}

// NewRegistry creates an empty registry that opens sessions with launcher.
func NewRegistry(launcher Launcher, opts RegistryOptions, logger *zap.Logger) *Registry {
	return &Registry{
		launcher: launcher,
		opts:     opts,
		logger:   logger.Named("registry"),
		now:      time.Now,
		sessions: make(map[WorkerID]*Session),
	}
}

// Acquire binds a new session of the given kind to the worker in ctx. A nil
// kind means Chrome. When the worker already has a session, that session is
// returned unchanged.
func (r *Registry) Acquire(ctx context.Context, kind Kind) (*Session, error) {
	worker := WorkerFrom(ctx)
	if s, ok := r.lookup(worker); ok {
		return s, nil
	}
	if kind == nil {
		kind = Chrome
	}

	logger := r.logger.With(zap.String("worker", string(worker)), zap.String("kind", kind.Name()))

	driver, err := r.launcher.Launch(ctx, kind.Capabilities(r.opts.Launch))
	if err != nil {
		r.opts.Metrics.LaunchFailed(kind.Name())
		logger.Error("Failed to launch browser.", zap.Error(err))
		return nil, fmt.Errorf("%w: launching %s: %w", ErrSessionInitFailed, kind.Name(), err)
	}

	s := &Session{
		id:        uuid.New().String(),
		worker:    worker,
		kind:      kind,
		driver:    driver,
		createdAt: r.now(),
	}
	if err := r.prepare(s, logger); err != nil {
		r.opts.Metrics.LaunchFailed(kind.Name())
		if qErr := driver.Quit(); qErr != nil {
			logger.Warn("Failed to quit browser after setup failure.", zap.Error(qErr))
		}
		return nil, err
	}

	r.mu.Lock()
	if existing, ok := r.sessions[worker]; ok {
		// Another call for the same worker won the race; keep its session.
		r.mu.Unlock()
		if qErr := driver.Quit(); qErr != nil {
			logger.Warn("Failed to quit duplicate browser.", zap.Error(qErr))
		}
		return existing, nil
	}
	r.sessions[worker] = s
	r.mu.Unlock()

	r.opts.Metrics.SessionStarted(kind.Name())
	logger.Info("Initialized browser session.", zap.String("session_id", s.id))
	return s, nil
}

// AcquireNamed parses a browser name and acquires a session for it. Blank
// names mean Chrome; unknown names fall back to Chrome with a warning.
func (r *Registry) AcquireNamed(ctx context.Context, name string) (*Session, error) {
	kind, ok := ParseKind(name)
	if !ok {
		r.logger.Warn("Unknown browser kind, defaulting to chrome.", zap.String("requested", name))
	}
	return r.Acquire(ctx, kind)
}

// prepare applies the implicit wait and window state to a fresh session.
func (r *Registry) prepare(s *Session, logger *zap.Logger) error {
	if err := s.driver.SetImplicitWait(r.opts.ImplicitWait); err != nil {
		logger.Error("Failed to set implicit wait.", zap.Error(err))
		return fmt.Errorf("%w: setting implicit wait: %w", ErrSessionInitFailed, err)
	}
	s.implicitWait = r.opts.ImplicitWait

	if r.opts.Maximize {
		if err := s.driver.MaximizeWindow(); err != nil {
			// Window state is cosmetic; headless runs may refuse it.
			logger.Warn("Failed to maximize window.", zap.Error(err))
		} else {
			s.maximized = true
		}
	}
	return nil
}

// Current returns the session bound to the worker in ctx.
func (r *Registry) Current(ctx context.Context) (*Session, bool) {
	return r.lookup(WorkerFrom(ctx))
}

// Require returns the current session or ErrNoSession.
func (r *Registry) Require(ctx context.Context) (*Session, error) {
	worker := WorkerFrom(ctx)
	s, ok := r.lookup(worker)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSession, worker)
	}
	return s, nil
}

func (r *Registry) lookup(worker WorkerID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[worker]
	return s, ok
}

// Release closes the worker's browser and unbinds it. Releasing an empty
// worker is a no-op. The worker is unbound even when closing fails.
func (r *Registry) Release(ctx context.Context) error {
	worker := WorkerFrom(ctx)

	r.mu.Lock()
	s, ok := r.sessions[worker]
	delete(r.sessions, worker)
	r.mu.Unlock()

	if !ok {
		return nil
	}
	return r.quit(s)
}

func (r *Registry) quit(s *Session) error {
	logger := r.logger.With(zap.String("worker", string(s.worker)), zap.String("session_id", s.id))
	r.opts.Metrics.SessionEnded()
	if err := s.driver.Quit(); err != nil {
		logger.Error("Browser quit failed; session unbound anyway.", zap.Error(err))
		return fmt.Errorf("quitting session %s: %w", s.id, err)
	}
	logger.Info("Browser session released.")
	return nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Shutdown releases every live session concurrently. It returns the joined
// quit errors; all workers are unbound regardless.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	live := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		live = append(live, s)
	}
	r.sessions = make(map[WorkerID]*Session)
	r.mu.Unlock()

	if len(live) == 0 {
		return nil
	}
	r.logger.Info("Shutting down browser sessions.", zap.Int("count", len(live)))

	var (
		errMu sync.Mutex
		errs  []error
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range live {
		g.Go(func() error {
			if gctx.Err() != nil {
				r.logger.Warn("Shutdown context done before quitting session.", zap.String("session_id", s.id))
			}
			if err := r.quit(s); err != nil {
				errMu.Lock()
				errs = append(errs, err)
				errMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
