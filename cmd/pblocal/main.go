// Command pblocal runs the pbls local-search engine against a problem given
// in the pbo text format (see internal/pbo), reporting the best solution
// found within a wall-clock cutoff.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/dcabiddu/pbls"
	"github.com/dcabiddu/pbls/internal/pbo"
)

type options struct {
	seed           uint64
	cutoff         time.Duration
	bestKnownValue int
	verbose        bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "pblocal [input.pbo]",
		Short: "Stochastic local search over a cardinality-constrained pseudo-Boolean problem",
		Long: `pblocal reads a single problem specification in the pbo format (see
internal/pbo) and searches for a truth assignment that satisfies every
cardinality constraint while maximizing the objective, restarting until
either the objective reaches --best-known-value or --cutoff elapses.

If no input file is given, pblocal reads from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	var flags *pflag.FlagSet = cmd.Flags()
	flags.Uint64Var(&opts.seed, "seed", 1, "seed for the engine's deterministic RNG")
	flags.DurationVar(&opts.cutoff, "cutoff", time.Second, "wall-clock search budget")
	flags.IntVar(&opts.bestKnownValue, "best-known-value", 0, "objective value at which the search may stop early")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log one line per 10 restarts")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "opening input file")
		}
		defer f.Close()
		r = f
	}

	problem, err := pbo.Parse(r)
	if err != nil {
		return errors.Wrap(err, "parsing problem")
	}

	var logger *zap.Logger
	if opts.verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return errors.Wrap(err, "building logger")
		}
		defer logger.Sync()
	}

	engine, err := pbls.NewEngine(problem, pbls.Config{
		Seed:           opts.seed,
		CutoffTime:     opts.cutoff,
		BestKnownValue: opts.bestKnownValue,
		Logger:         logger,
	})
	if err != nil {
		return errors.Wrap(err, "building engine")
	}

	result := engine.Run()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Status)
	if !result.Feasible() {
		return nil
	}
	fmt.Fprintf(out, "objective %d (best at %s, %d tries, %d steps)\n",
		result.BestObjectiveValue, result.BestTime, result.Tries, result.Steps)
	for v := 1; v < len(result.BestSolution); v++ {
		lit := v
		if !result.BestSolution[v] {
			lit = -v
		}
		if v > 1 {
			fmt.Fprint(out, " ")
		}
		fmt.Fprint(out, lit)
	}
	fmt.Fprintln(out)
	return nil
}
