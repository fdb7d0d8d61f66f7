// Command wavepick runs the GRASP multi-start search engine over a
// wave-picking instance read from stdin, writing the best solution found
// to stdout, per spec.md §6's external interface contract.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/wavepick/wavepick/internal/config"
	"github.com/wavepick/wavepick/internal/ioformat"
	"github.com/wavepick/wavepick/internal/metrics"
	"github.com/wavepick/wavepick/pkg/wavepick"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		heuristicFlag int
		logFlag       string
		patienceFlag  time.Duration
		workersFlag   int
		seedFlag      int64
		configFlag    string
	)

	cmd := &cobra.Command{
		Use:   "wavepick [heuristic] [logfile]",
		Short: "GRASP multi-start search for warehouse wave-picking",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return fmt.Errorf("wavepick: load config: %w", err)
			}

			heuristic := cfg.Heuristic
			logPath := cfg.LogPath
			patience := cfg.Patience
			workers := cfg.Workers
			seed := cfg.Seed

			if cmd.Flags().Changed("heuristic") {
				heuristic = heuristicFlag
			}
			if cmd.Flags().Changed("log") {
				logPath = logFlag
			}
			if cmd.Flags().Changed("patience") {
				patience = patienceFlag
			}
			if cmd.Flags().Changed("workers") {
				workers = workersFlag
			}
			if cmd.Flags().Changed("seed") {
				seed = uint64(seedFlag)
			}

			// Positional args preserve spec.md §6's argv[1]/argv[2] contract,
			// taking precedence over defaults but not over explicit flags.
			if len(args) >= 1 && !cmd.Flags().Changed("heuristic") {
				var v int
				if _, err := fmt.Sscanf(args[0], "%d", &v); err != nil {
					return fmt.Errorf("wavepick: parse heuristic argument: %w", err)
				}
				heuristic = v
			}
			if len(args) >= 2 && !cmd.Flags().Changed("log") {
				logPath = args[1]
			}

			return run(cmd.Context(), heuristic, logPath, patience, workers, seed)
		},
	}

	cmd.Flags().IntVar(&heuristicFlag, "heuristic", 1, "constructor: 0=H1 1=H2 2=H3 3=H4")
	cmd.Flags().StringVar(&logFlag, "log", "", "path to improvement log (truncated at start)")
	cmd.Flags().DurationVar(&patienceFlag, "patience", wavepick.DefaultPatience, "stagnation window before stopping")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "parallel restart workers (0 = runtime.NumCPU())")
	cmd.Flags().Int64Var(&seedFlag, "seed", 0, "base RNG seed (0 = nondeterministic-ish per-worker mix)")
	cmd.Flags().StringVar(&configFlag, "config", "", "optional YAML config file")

	return cmd
}

func run(ctx context.Context, heuristicIdx int, logPath string, patience time.Duration, workers int, seed uint64) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	problem, err := ioformat.ReadInstance(os.Stdin)
	if err != nil {
		return err
	}
	caches := wavepick.BuildCaches(problem)

	var improveLog *ioformat.ImprovementLog
	if logPath != "" {
		improveLog, err = ioformat.OpenImprovementLog(logPath)
		if err != nil {
			return err
		}
		defer improveLog.Close()
	}

	if workers <= 0 {
		workers = maxInt(1, runtime.NumCPU())
	}

	heuristic := wavepick.Heuristic(heuristicIdx)
	metrics.RegisterDefault()

	driver := wavepick.NewDriver(problem, caches,
		wavepick.WithHeuristic(heuristic),
		wavepick.WithPatience(patience),
		wavepick.WithWorkers(workers),
		wavepick.WithSeed(seed),
	)
	driver.OnImprovement = func(imp wavepick.Improvement) {
		metrics.ImprovementsTotal.WithLabelValues(heuristic.String()).Inc()
		metrics.BestScore.Set(imp.Score)
		improveLog.Append(imp.Elapsed, imp.Score)
		logger.Info("incumbent improved",
			"worker", imp.Worker,
			"score", imp.Score,
			"elapsed", imp.Elapsed,
		)
	}
	driver.OnRestart = func(dur time.Duration) {
		metrics.RestartsTotal.WithLabelValues(heuristic.String()).Inc()
		metrics.RestartDuration.WithLabelValues(heuristic.String()).Observe(dur.Seconds())
	}
	driver.OnVerifyReject = func() {
		metrics.VerifierRejectionsTotal.WithLabelValues(heuristic.String()).Inc()
		logger.Warn("candidate solution failed feasibility verification")
	}

	best, _, err := driver.Run(ctx)
	if err != nil {
		// No feasible solution within patience: output the empty solution
		// and exit 0, per spec.md §7's "No feasible solution found" kind.
		logger.Warn("no feasible solution found", "error", err)
		return ioformat.WriteSolution(os.Stdout, wavepick.Solution{})
	}

	return ioformat.WriteSolution(os.Stdout, best)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
