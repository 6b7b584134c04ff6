package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kbukum/envcascade/config"
	"github.com/kbukum/envcascade/source"
	"github.com/kbukum/envcascade/traceapi"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		flags resolveFlags
		port  int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolution trace over HTTP",
		Long: `Serve the resolution trace over HTTP.

The server itself is configured from ENVCHECK_HOST, ENVCHECK_PORT and the
ENVCHECK_*_TIMEOUT variables. --port overrides ENVCHECK_PORT.

Example:
  envcheck serve --spec config.spec.yaml --file .env --port 9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.resolve(cmd, &flags)
			if err != nil {
				return err
			}

			srvCfg, err := a.serverConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				srvCfg.Port = port
			}
			if err := srvCfg.Validate(); err != nil {
				return err
			}

			srv := traceapi.NewServer(srvCfg, a.log)
			srv.ApplyMiddleware()
			traceapi.Register(srv.Engine(), m)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "serving configuration trace on http://%s/config/trace\n", srv.Addr())
			<-ctx.Done()
			return srv.Stop(cmd.Context())
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Listen port")
	return cmd
}

// serverConfig resolves the server's own settings from the environment.
func (a *app) serverConfig() (traceapi.Config, error) {
	var cfg traceapi.Config
	m, err := config.New(traceapi.Spec(),
		config.WithEnvironment(a.env),
		config.WithStrategy(source.None()),
		config.WithExitOnError(false),
		config.WithLogger(a.log))
	if err != nil {
		return cfg, err
	}
	if err := m.Bind(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
