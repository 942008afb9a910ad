// File: cmd/shot.go
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newShotCmd() *cobra.Command {
	var (
		url         string
		label       string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "shot",
		Short: "Capture a screenshot of a page",
		Args:  cobra.NoArgs,
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
			if path := rt.facade.CaptureScreenshot(ctx, label); path == "" {
				return fmt.Errorf("screenshot of %s was not written", url)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "page to open (required)")
	cmd.Flags().StringVar(&label, "label", "", "screenshot label (default ScreenShot)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
