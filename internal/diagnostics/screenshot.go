// internal/diagnostics/screenshot.go
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/xkilldash9x/webpilot/internal/observability"
)

const (
	// Dir is the screenshot directory relative to the project root. The
	// literal is kept for compatibility with existing CI artifact globs.
	Dir = "src/test/java/ScreenShots"
	// DefaultLabel replaces an empty label.
	DefaultLabel = "ScreenShot"
	// TimestampLayout renders YYYYMMDD_HHMMSS.
	TimestampLayout = "20060102_150405"
)

// Source produces a PNG of the current viewport. browser.Driver satisfies it.
type Source interface {
	Screenshot() ([]byte, error)
}

// Screenshotter writes labelled, timestamped screenshots under a project root.
// Capture never fails from the caller's point of view.
type Screenshotter struct {
	fs      afero.Fs
	root    string
	now     func() time.Time
	stdout  io.Writer
	stderr  io.Writer
	logger  *zap.Logger
	metrics *observability.Metrics
}

// Option configures a Screenshotter.
type Option func(*Screenshotter)

// WithFs replaces the OS filesystem, typically with afero.NewMemMapFs in tests.
func WithFs(fs afero.Fs) Option {
	return func(s *Screenshotter) { s.fs = fs }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Screenshotter) { s.now = now }
}

// WithOutput redirects the path announcements and the failure reports.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *Screenshotter) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithMetrics counts captures by outcome.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Screenshotter) { s.metrics = m }
}

// NewScreenshotter creates a writer rooted at root. A blank root means the
// working directory.
func NewScreenshotter(root string, logger *zap.Logger, opts ...Option) *Screenshotter {
	if root == "" {
		root = "."
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	s := &Screenshotter{
		fs:     afero.NewOsFs(),
		root:   root,
		now:    time.Now,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger.Named("screenshot"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the absolute project root.
func (s *Screenshotter) Root() string { return s.root }

// Path composes the destination for label at instant t.
func Path(root, label string, t time.Time) string {
	if strings.TrimSpace(label) == "" {
		label = DefaultLabel
	}
	return filepath.Join(root, Dir, label+"_"+t.Format(TimestampLayout)+".png")
}

// Capture grabs a screenshot from src and stores it under label. It returns
// the absolute path written, or "" when anything failed. Failures are
// reported on stderr and logged, never returned.
func (s *Screenshotter) Capture(src Source, label string) string {
	dest := Path(s.root, label, s.now())
	logger := s.logger.With(zap.String("label", label), zap.String("path", dest))

	if src == nil {
		s.fail(logger, dest, fmt.Errorf("no browser session"))
		return ""
	}
	png, err := src.Screenshot()
	if err != nil {
		s.fail(logger, dest, fmt.Errorf("capturing viewport: %w", err))
		return ""
	}
	if err := s.write(dest, png); err != nil {
		s.fail(logger, dest, err)
		return ""
	}

	s.metrics.Screenshot("ok")
	logger.Info("Screenshot captured.")
	fmt.Fprintf(s.stdout, "Screenshot captured: %s\n", dest)
	return dest
}

// write stores data at dest through a sibling temp file so readers never see
// a partial image. An existing file is replaced.
func (s *Screenshotter) write(dest string, data []byte) error {
	if err := s.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating screenshot directory: %w", err)
	}
	tmp, err := afero.TempFile(s.fs, filepath.Dir(dest), ".shot-*.png")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := s.fs.Rename(tmpPath, dest); err != nil {
		// Windows refuses to rename over an existing file.
		if wErr := afero.WriteFile(s.fs, dest, data, 0o644); wErr != nil {
			_ = s.fs.Remove(tmpPath)
			return fmt.Errorf("replacing %s: %w", dest, wErr)
		}
		_ = s.fs.Remove(tmpPath)
	}
	return nil
}

func (s *Screenshotter) fail(logger *zap.Logger, dest string, err error) {
	s.metrics.Screenshot("error")
	logger.Error("Screenshot capture failed.", zap.Error(err))
	fmt.Fprintf(s.stderr, "Screenshot capture failed for %s: %v\n", dest, err)
}
