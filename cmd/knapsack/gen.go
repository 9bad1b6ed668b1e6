package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/knapsack/generator"
	"github.com/katalvlaran/knapsack/instance"
)

func newGenCmd(_ *app) *cobra.Command {
	var (
		class    string
		n        int
		seed     int64
		r        int64
		ratio    float64
		format   string
		outPath  string
		withBest bool
		variant  string
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random instance",
		Long: `Gen draws a reproducible random instance of one of the classes
uncorrelated, weakly-correlated, strongly-correlated,
inverse-strongly-correlated or subset-sum and writes it to stdout or --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := generator.ParseClass(class)
			if err != nil {
				return err
			}
			f, err := instance.ParseFormat(format)
			if err != nil {
				return err
			}
			inst, err := generator.Generate(c, n,
				generator.WithSeed(seed),
				generator.WithRange(r),
				generator.WithCapacityRatio(ratio),
			)
			if err != nil {
				return err
			}
			p := &instance.Parsed{Instance: inst}
			if withBest {
				v, err := instance.ParseVariant(variant)
				if err != nil {
					return err
				}
				if p.Optimum, err = optimum(cmd, inst, v); err != nil {
					return err
				}
				p.HasOptimum = true
			}

			w := cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}

			return instance.Write(w, p, f)
		},
	}
	f := cmd.Flags()
	f.StringVar(&class, "class", "uncorrelated", "instance class")
	f.IntVarP(&n, "n", "n", 100, "number of items")
	f.Int64Var(&seed, "seed", 1, "random seed")
	f.Int64Var(&r, "range", 1000, "coefficient range R (>= 10)")
	f.Float64Var(&ratio, "capacity-ratio", 0.5, "budget as a fraction of the total cost, in (0, 1]")
	f.StringVar(&format, "format", "tp", "output format: tp, classic, unbounded, yaml")
	f.StringVar(&outPath, "out", "", "output file (default stdout)")
	f.BoolVar(&withBest, "with-optimum", false, "solve the instance and store its optimum")
	f.StringVar(&variant, "variant", "bounded", "variant used for --with-optimum")

	return cmd
}
