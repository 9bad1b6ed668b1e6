// Package batch solves a list of benchmark files concurrently and verifies
// each result against the optimum shipped with the file.
//
// Files are independent: a parse or solve failure is reported in that
// file's Outcome and does not stop the others. Each search is still
// single-threaded; Threads only bounds how many files are in flight.
package batch

import (
	"context"
	"errors"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/knapsack/instance"
	"github.com/katalvlaran/knapsack/solver"
)

// ErrNoThreads indicates Options.Threads < 1.
var ErrNoThreads = errors.New("batch: threads must be >= 1")

// Options configures Run.
type Options struct {
	Threads int
	// Format forces a parser; nil detects it from each file name.
	Format *instance.Format
	Solver solver.Config
	Logger logr.Logger
}

// Outcome is the result for one input file.
type Outcome struct {
	File     string
	Report   solver.Report
	Optimum  int64
	Known    bool  // the file carried an optimum
	Verified bool  // Verify passed
	Err      error // parse, solve or verification error
	Elapsed  time.Duration
}

// Summary aggregates a run.
type Summary struct {
	RunID    string
	Files    int
	Failed   int
	Optimal  int // exhaustive results
	Verified int
	Elapsed  time.Duration
}

// Run processes files with at most opts.Threads in flight and returns the
// outcomes in input order. The returned error is non-nil only for invalid
// options or when ctx ends; files it never started carry ctx.Err().
func Run(ctx context.Context, files []string, opts Options) ([]Outcome, Summary, error) {
	if opts.Threads < 1 {
		return nil, Summary{}, ErrNoThreads
	}
	var (
		start    = time.Now()
		runID    = uuid.NewString()
		log      = opts.Logger.WithValues("run", runID)
		outcomes = make([]Outcome, len(files))
	)
	log.Info("batch started", "files", len(files), "threads", opts.Threads)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Threads)
	for i, file := range files {
		if err := gCtx.Err(); err != nil {
			// Never started: reported as failed so the summary still
			// accounts for every file.
			outcomes[i] = Outcome{File: file, Err: err}
			continue
		}
		i, file := i, file
		g.Go(func() error {
			outcomes[i] = one(gCtx, file, opts)
			if o := outcomes[i]; o.Err != nil {
				log.Error(o.Err, "instance failed", "file", file)
			} else {
				log.V(1).Info("instance done", "file", file, "value", o.Report.Value, "elapsed", o.Elapsed)
			}
			return nil
		})
	}
	_ = g.Wait()

	sum := Summary{RunID: runID, Files: len(files), Elapsed: time.Since(start)}
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			sum.Failed++
		case o.Verified:
			sum.Verified++
		}
		if o.Err == nil && o.Report.Exhaustive {
			sum.Optimal++
		}
	}
	log.Info("batch finished", "failed", sum.Failed, "verified", sum.Verified, "elapsed", sum.Elapsed)

	return outcomes, sum, ctx.Err()
}

// one parses, solves and verifies a single file.
func one(ctx context.Context, file string, opts Options) Outcome {
	start := time.Now()
	out := Outcome{File: file}

	f := instance.DetectFormat(file)
	if opts.Format != nil {
		f = *opts.Format
	}
	p, err := instance.ParseFile(file, f)
	if err != nil {
		out.Err = err
		out.Elapsed = time.Since(start)
		return out
	}
	out.Optimum, out.Known = p.Optimum, p.HasOptimum

	rep, err := solver.Solve(ctx, p.Instance, opts.Solver)
	if err != nil {
		out.Err = err
		out.Elapsed = time.Since(start)
		return out
	}
	out.Report = rep
	if err = solver.Verify(rep, p); err != nil {
		out.Err = err
	} else {
		out.Verified = p.HasOptimum
	}
	out.Elapsed = time.Since(start)

	return out
}
