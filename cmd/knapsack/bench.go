package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/knapsack/instance"
	"github.com/katalvlaran/knapsack/internal/batch"
	"github.com/katalvlaran/knapsack/solver"
)

func newBenchCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "bench FILE...",
		Short: "Solve and verify many instance files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, files []string) error {
			cfg, err := a.solverConfig()
			if err != nil {
				return err
			}
			opts := batch.Options{
				Threads: a.cfg.Batch.Threads,
				Solver:  cfg,
				Logger:  a.log,
			}
			if format == "" {
				format = a.cfg.Batch.Format
			}
			if format != "" {
				f, err := instance.ParseFormat(format)
				if err != nil {
					return err
				}
				opts.Format = &f
			}

			outcomes, sum, err := batch.Run(cmd.Context(), files, opts)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tVALUE\tOPTIMUM\tEXHAUSTIVE\tMS\tSTATUS")
			for _, o := range outcomes {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%t\t%.1f\t%s\n",
					o.File, o.Report.Value, optimumCell(o), o.Report.Exhaustive,
					float64(o.Elapsed.Microseconds())/1000, status(o))
			}
			fmt.Fprintf(tw, "\n%d files, %d failed, %d verified, %d optimal in %s (run %s)\n",
				sum.Files, sum.Failed, sum.Verified, sum.Optimal, sum.Elapsed.Round(1e6), sum.RunID)
			if err = tw.Flush(); err != nil {
				return err
			}
			if sum.Failed > 0 {
				return fmt.Errorf("%d of %d instances failed", sum.Failed, sum.Files)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "force input format for every file")
	cmd.Flags().IntVarP(&a.threads, "threads", "j", 1, "instances solved concurrently")
	addSolverFlags(cmd, a)

	return cmd
}

func optimumCell(o batch.Outcome) string {
	if !o.Known {
		return "-"
	}

	return fmt.Sprint(o.Optimum)
}

func status(o batch.Outcome) string {
	if o.Err != nil {
		return "FAIL: " + o.Err.Error()
	}
	if o.Verified {
		return "ok"
	}

	return "unverified"
}

// optimum solves inst exhaustively for gen --with-optimum.
func optimum(cmd *cobra.Command, inst *instance.Instance, v instance.Variant) (int64, error) {
	cfg := solver.DefaultConfig()
	cfg.Variant = v
	rep, err := solver.Solve(cmd.Context(), inst, cfg)
	if err != nil {
		return 0, err
	}

	return rep.Value, nil
}
