package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/knapsack/instance"
	"github.com/katalvlaran/knapsack/solver"
)

type solveOutput struct {
	File       string  `json:"file"`
	Algo       string  `json:"algo"`
	Variant    string  `json:"variant"`
	Value      int64   `json:"value"`
	Cost       int64   `json:"cost"`
	Budget     int64   `json:"budget"`
	Counts     []int64 `json:"counts,omitempty"`
	Exhaustive bool    `json:"exhaustive"`
	Stop       string  `json:"stop"`
	ElapsedMS  float64 `json:"elapsed_ms"`
	Nodes      int64   `json:"nodes,omitempty"`
	Optimum    *int64  `json:"optimum,omitempty"`
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve one instance file",
		Long: `Solve reads FILE, runs the configured solver and prints the result.
When the file carries a known optimum the result is checked against it and a
mismatch is an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			f := instance.DetectFormat(file)
			if format != "" {
				var err error
				if f, err = instance.ParseFormat(format); err != nil {
					return err
				}
			}
			p, err := instance.ParseFile(file, f)
			if err != nil {
				return err
			}
			cfg, err := a.solverConfig()
			if err != nil {
				return err
			}
			rep, err := solver.Solve(cmd.Context(), p.Instance, cfg)
			if err != nil {
				return err
			}

			out := solveOutput{
				File:       file,
				Algo:       rep.Algo.String(),
				Variant:    rep.Variant.String(),
				Value:      rep.Value,
				Cost:       rep.Cost,
				Budget:     p.Instance.Budget(),
				Counts:     rep.Counts,
				Exhaustive: rep.Exhaustive,
				Stop:       rep.Stop.String(),
				ElapsedMS:  float64(rep.Elapsed.Microseconds()) / 1000,
				Nodes:      rep.Stats.Nodes,
			}
			if p.HasOptimum {
				out.Optimum = &p.Optimum
			}
			if err = printSolve(cmd.OutOrStdout(), out, output); err != nil {
				return err
			}

			return solver.Verify(rep, p)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format: tp, classic, unbounded, yaml (default: from extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output: text or json")
	addSolverFlags(cmd, a)

	return cmd
}

// printSolve renders out as text or JSON.
func printSolve(w io.Writer, out solveOutput, mode string) error {
	switch mode {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "text":
		fmt.Fprintf(w, "algo:       %s (%s)\n", out.Algo, out.Variant)
		fmt.Fprintf(w, "value:      %d\n", out.Value)
		fmt.Fprintf(w, "cost:       %d / %d\n", out.Cost, out.Budget)
		fmt.Fprintf(w, "exhaustive: %t (%s)\n", out.Exhaustive, out.Stop)
		if out.Counts != nil {
			fmt.Fprint(w, "selection:")
			for i, c := range out.Counts {
				if c == 1 {
					fmt.Fprintf(w, " %d", i)
				} else if c > 1 {
					fmt.Fprintf(w, " %dx%d", i, c)
				}
			}
			fmt.Fprintln(w)
		}
		if out.Optimum != nil {
			fmt.Fprintf(w, "optimum:    %d\n", *out.Optimum)
		}
		_, err := fmt.Fprintf(w, "elapsed:    %.3fms\n", out.ElapsedMS)
		return err
	default:
		return errors.New("unknown output mode " + mode)
	}
}
