package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/overload/internal/scenario"
	"github.com/wippyai/overload/metrics"
)

var passColor = color.New(color.FgGreen, color.Bold)

func newRunCmd(a *app) *cobra.Command {
	var (
		parallelism int
		dumpMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml|scenario.toml>...",
		Short: "Run scenario files of calls with expected outcomes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, paths []string) error {
			if parallelism <= 0 {
				parallelism = a.cfg.CLI.Parallelism
			}
			if dumpMetrics {
				a.cfg.Metrics.Enabled = true
			}
			d, err := a.catalog()
			if err != nil {
				return err
			}
			runner := &scenario.Runner{Dispatcher: d, Parallelism: parallelism}

			w := cmd.OutOrStdout()
			failed := 0
			for _, path := range paths {
				f, err := scenario.Load(path)
				if err != nil {
					return err
				}
				start := time.Now()
				results, err := runner.Run(cmd.Context(), f)
				if err != nil {
					return err
				}
				a.log.Debug("scenario finished",
					zap.String("scenario", f.Name),
					zap.Int("calls", len(results)),
					zap.Duration("elapsed", time.Since(start)))

				fmt.Fprintln(w, setColor.Sprint(f.Name))
				for _, r := range results {
					if r.Passed {
						fmt.Fprintf(w, "  %s %s\n", passColor.Sprint("PASS"), r.Call.Label())
						continue
					}
					fmt.Fprintf(w, "  %s %s: %s\n", failColor.Sprint("FAIL"), r.Call.Label(), r.Message)
				}
				failed += scenario.Failed(results)
			}

			if dumpMetrics && a.metrics != nil {
				if err := metrics.Write(w, a.metrics); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d scenario call(s) failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&parallelism, "parallel", "p", 0, "concurrent calls (default cli.parallelism)")
	cmd.Flags().BoolVar(&dumpMetrics, "metrics", false, "print resolution metrics after the run")
	return cmd
}
