package main

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/knapsack/dp"
	"github.com/katalvlaran/knapsack/instance"
	"github.com/katalvlaran/knapsack/internal/config"
	"github.com/katalvlaran/knapsack/internal/logging"
	"github.com/katalvlaran/knapsack/solver"
)

// app is the state shared by all subcommands once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logDev     bool

	algo     string
	variant  string
	timeout  time.Duration
	rolling  bool
	threads  int
	addr     string

	cfg config.Config
	log logr.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logr.Discard()}
	root := &cobra.Command{
		Use:           "knapsack",
		Short:         "Exact 0/1 and unbounded knapsack solver",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log verbosity: info, debug or trace")
	root.PersistentFlags().BoolVar(&a.logDev, "log-dev", false, "human-readable development logs")

	root.AddCommand(
		newSolveCmd(a),
		newGenCmd(a),
		newBenchCmd(a),
		newServeCmd(a),
	)

	return root
}

// setup loads the configuration, applies the global flags and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-dev") {
		cfg.Log.Dev = a.logDev
	}
	a.applyFlags(cmd, &cfg)
	if err = cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	v, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.log, err = logging.NewLogger(v, cfg.Log.Dev)

	return err
}

// solverConfig converts the text configuration into a solver.Config.
func (a *app) solverConfig() (solver.Config, error) {
	s := a.cfg.Solver
	cfg := solver.DefaultConfig()
	algo, err := solver.ParseAlgo(s.Algo)
	if err != nil {
		return cfg, err
	}
	variant, err := instance.ParseVariant(s.Variant)
	if err != nil {
		return cfg, err
	}
	cfg.Algo, cfg.Variant = algo, variant
	cfg.TimeLimit = s.TimeLimit
	cfg.DropZeroValue = s.DropZeroValue
	cfg.MaxCells = s.MaxCells
	if s.RollingRow {
		cfg.MemoryMode = dp.RollingRow
	}
	cfg.Logger = a.log

	return cfg, nil
}

// addSolverFlags registers the flags that override the solver section.
func addSolverFlags(cmd *cobra.Command, a *app) {
	f := cmd.Flags()
	f.StringVar(&a.algo, "algo", "", "algorithm: bnb or dp")
	f.StringVar(&a.variant, "variant", "", "problem: bounded or unbounded")
	f.DurationVar(&a.timeout, "timeout", 0, "branch-and-bound time limit (0 = none)")
	f.BoolVar(&a.rolling, "rolling-row", false, "dp: keep one row, report the value only")
}

// applyFlags copies explicitly set command flags over the file values.
func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("algo") {
		cfg.Solver.Algo = a.algo
	}
	if changed("variant") {
		cfg.Solver.Variant = a.variant
	}
	if changed("timeout") {
		cfg.Solver.TimeLimit = a.timeout
	}
	if changed("rolling-row") {
		cfg.Solver.RollingRow = a.rolling
	}
	if changed("threads") {
		cfg.Batch.Threads = a.threads
	}
	if changed("addr") {
		cfg.Server.Addr = a.addr
	}
}
