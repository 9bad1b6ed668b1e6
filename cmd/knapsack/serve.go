package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/knapsack/internal/metrics"
	"github.com/katalvlaran/knapsack/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.solverConfig()
			if err != nil {
				return err
			}
			if !a.cfg.Log.Dev {
				gin.SetMode(gin.ReleaseMode)
			}
			m := metrics.New(prometheus.DefaultRegisterer)
			srv := server.New(a.cfg.Server, cfg, m, prometheus.DefaultGatherer, a.log)

			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&a.addr, "addr", "", "listen address (default from config)")
	addSolverFlags(cmd, a)

	return cmd
}
