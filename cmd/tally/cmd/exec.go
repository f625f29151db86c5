package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/MeKo-Tech/tally/internal/benchmark"
	"github.com/MeKo-Tech/tally/internal/config"
	"github.com/MeKo-Tech/tally/internal/metrics"
	"github.com/MeKo-Tech/tally/internal/report"
	"github.com/MeKo-Tech/tally/internal/timer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newExecCommand(a *app) *cobra.Command {
	execCmd := &cobra.Command{
		Use:   "exec [flags] -- command [args...]",
		Short: "Run a command under a named timer",
		Long: `Run a command one or more times. Every run is measured by the same
named timer, logged, and added to the timer's total. The totals are
printed once all runs finish. A failing run stops the loop; its time is
still counted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loader.Current()
			if err != nil {
				return err
			}
			return runExec(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, args)
		},
	}

	flags := execCmd.Flags()
	flags.SetInterspersed(false)
	flags.StringP("name", "n", "exec", "timer name the runs accumulate under")
	flags.IntP("repeat", "r", 1, "number of runs")
	flags.StringP("format", "o", report.FormatText, "report format (text, table, json, yaml)")
	flags.String("template", "", "message template with one float verb, e.g. \"%0.3f s\"")
	flags.Bool("metrics", false, "also print Prometheus metrics for the timers")

	v := a.loader.GetViper()
	_ = v.BindPFlag("exec.name", flags.Lookup("name"))
	_ = v.BindPFlag("exec.repeat", flags.Lookup("repeat"))
	_ = v.BindPFlag("output.format", flags.Lookup("format"))
	_ = v.BindPFlag("exec.metrics", flags.Lookup("metrics"))
	_ = v.BindPFlag("timer.template", flags.Lookup("template"))

	return execCmd
}

func runExec(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	suite := benchmark.NewSuite(timer.NewRegistry(),
		timer.WithTemplate(cfg.Timer.Template),
		timer.WithSlog(slog.Default(), slog.LevelInfo),
	)

	run := 0
	err := suite.Add(cfg.Exec.Name, func() error {
		run++
		slog.Debug("Starting run", "timer", cfg.Exec.Name, "run", run, "of", cfg.Exec.Repeat, "command", args[0])
		c := exec.CommandContext(ctx, args[0], args[1:]...)
		c.Stdout = stdout
		c.Stderr = stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("run %d of %q: %w", run, args[0], err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	result := suite.Run(cfg.Exec.Name, cfg.Exec.Repeat)
	if result.Error != nil {
		slog.Error("Run failed", "timer", cfg.Exec.Name, "run", result.Iterations, "error", result.Error)
	}
	slog.Debug("Finished", "result", result.String(), "memory", result.MemoryAfter.String())

	reg := suite.Registry()
	if err := report.Write(stdout, reg.Snapshot(), cfg.Output.Format); err != nil {
		return errors.Join(result.Error, err)
	}

	if cfg.Exec.Metrics {
		promReg := prometheus.NewRegistry()
		if err := promReg.Register(metrics.NewCollector(reg, cfg.Timer.Namespace)); err != nil {
			return errors.Join(result.Error, fmt.Errorf("failed to register collector: %w", err))
		}
		if err := metrics.WriteText(stdout, promReg); err != nil {
			return errors.Join(result.Error, err)
		}
	}

	return result.Error
}
