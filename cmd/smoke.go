// File: cmd/smoke.go
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSmokeCmd() *cobra.Command {
	var (
		url         string
		expect      string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Open a page in a fresh browser session and check that it renders",
		Long: `smoke acquires a browser session, navigates to --url, optionally waits
for --expect to appear on the page, and stores a "smoke" screenshot.
A failed expectation leaves a "smoke_failure" screenshot and exits non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			rt, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, rt.close(ctx, metricsFile))
			}()

			if _, err := rt.registry.AcquireNamed(ctx, rt.cfg.Browser().Kind); err != nil {
				return err
			}
			if err := rt.facade.Get(ctx, url); err != nil {
				return err
			}
			if expect != "" {
				if err := rt.facade.WaitUntilPageContain(ctx, expect); err != nil {
					rt.facade.CaptureScreenshot(ctx, "smoke_failure")
					return err
				}
			}
			title, err := rt.facade.GetTitle(ctx)
			if err != nil {
				rt.logger.Warn("Could not read page title.", zap.Error(err))
			}
			rt.facade.CaptureScreenshot(ctx, "smoke")
			fmt.Fprintf(cmd.OutOrStdout(), "OK %s %q\n", url, title)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "page to open (required)")
	cmd.Flags().StringVar(&expect, "expect", "", "text that must become visible on the page")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
