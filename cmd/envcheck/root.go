package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/envcascade/logger"
	"github.com/kbukum/envcascade/observability"
	"github.com/kbukum/envcascade/source"
)

// app carries state shared by every subcommand.
type app struct {
	env          source.Environment
	logLevel     string
	otlpEndpoint string

	log      *logger.Logger
	metrics  *observability.Metrics
	shutdown []func(context.Context) error
}

func newRootCmd(env source.Environment) *cobra.Command {
	a := &app{env: env}

	rootCmd := &cobra.Command{
		Use:           "envcheck",
		Short:         "Resolve and inspect layered configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&a.otlpEndpoint, "otlp-endpoint", "", "OTLP HTTP endpoint host:port; enables tracing and metrics")

	rootCmd.AddCommand(newShowCmd(a), newServeCmd(a), newVersionCmd())
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := &logger.Config{Level: a.logLevel, Format: "console"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.log = logger.NewWithWriter(cfg, "envcheck", cmd.ErrOrStderr())
	logger.SetGlobalLogger(a.log)

	if a.otlpEndpoint == "" {
		return nil
	}

	ctx := cmd.Context()
	tcfg := observability.DefaultTracerConfig("envcheck")
	tcfg.Endpoint = a.otlpEndpoint
	tp, err := observability.InitTracer(ctx, tcfg)
	if err != nil {
		return err
	}
	a.shutdown = append(a.shutdown, tp.Shutdown)

	mcfg := observability.DefaultMeterConfig("envcheck")
	mcfg.Endpoint = a.otlpEndpoint
	mp, err := observability.InitMeter(ctx, mcfg)
	if err != nil {
		return err
	}
	a.shutdown = append(a.shutdown, mp.Shutdown)

	a.metrics, err = observability.NewMetrics(observability.Meter("envcheck"))
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	var errs []error
	for _, fn := range a.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.shutdown = nil
	return errors.Join(errs...)
}
