// File: cmd/app.go
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/webpilot/internal/actions"
	"github.com/xkilldash9x/webpilot/internal/browser"
	"github.com/xkilldash9x/webpilot/internal/config"
	"github.com/xkilldash9x/webpilot/internal/diagnostics"
	"github.com/xkilldash9x/webpilot/internal/observability"
)

// newLauncher opens browser sessions; swapped in tests.
var newLauncher = func(cfg config.BrowserConfig, logger *zap.Logger) browser.Launcher {
	return browser.NewRemoteLauncher(cfg.RemoteURL, cfg.LaunchAttempts, logger)
}

// app is the object graph behind a subcommand: one registry, one facade,
// one metrics registry.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *browser.Registry
	facade   *actions.Facade
	gatherer *prometheus.Registry
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := configFromContext(cmd.Context())
	if err != nil {
		return nil, err
	}
	logger := observability.GetLogger()

	gatherer := prometheus.NewRegistry()
	metrics := observability.NewMetrics(gatherer)

	bc := cfg.Browser()
	registry := browser.NewRegistry(newLauncher(bc, logger), browser.RegistryOptions{
		Launch:       browser.LaunchOptions{Incognito: bc.Incognito},
		ImplicitWait: bc.ImplicitWait,
		Maximize:     bc.Maximize,
		Metrics:      metrics,
	}, logger)

	shots := diagnostics.NewScreenshotter(cfg.Screenshots().Root, logger,
		diagnostics.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		diagnostics.WithMetrics(metrics))

	facade := actions.New(registry, shots, logger,
		actions.WithTimeouts(actions.TimeoutsFromConfig(cfg.Waits())),
		actions.WithMetrics(metrics))

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		facade:   facade,
		gatherer: gatherer,
	}, nil
}

// close releases every session and, when metricsFile is set, writes the
// collected metrics in the Prometheus text format.
func (r *app) close(ctx context.Context, metricsFile string) error {
	// Shutdown must run even when ctx was cancelled by a signal.
	err := r.registry.Shutdown(context.WithoutCancel(ctx))
	if metricsFile != "" {
		if mErr := prometheus.WriteToTextfile(metricsFile, r.gatherer); mErr != nil {
			err = errors.Join(err, fmt.Errorf("writing metrics: %w", mErr))
		}
	}
	return err
}

// zapWriter sends console logs to the command's stderr.
func zapWriter(cmd *cobra.Command) zapcore.WriteSyncer {
	return zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr()))
}
