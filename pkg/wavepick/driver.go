package wavepick

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
)

// Improvement describes one incumbent update reported by the Driver to an
// optional observer, e.g. internal/ioformat's improvement-log writer or
// internal/metrics' Prometheus counters.
type Improvement struct {
	Worker   int
	Solution Solution
	Score    float64
	Elapsed  time.Duration
}

// runOnce executes one full construct+refine restart for heuristic h and
// returns the resulting Solution. H1 operates on a bare Solution value
// throughout (construct_h1.go, refine_h1.go); H2/H3/H4 build an incremental
// State, generalizing through the shared Refine pass.
func runOnce(p *Problem, c *Caches, h Heuristic, rng *rand.Rand) Solution {
	switch h {
	case H1:
		sol := ConstructH1(p, rng)
		return RefineH1(p, c, sol)

	case H3:
		sol := ConstructH3(p, c, rng)
		s := NewState(p, c)
		for _, o := range sol.Orders {
			s.AddOrder(o)
		}
		for _, a := range sol.Aisles {
			s.AddAisle(a)
		}
		aisles := Refine(s, sol.Aisles, rng)
		return Solution{Orders: s.SelectedOrders(), Aisles: aisles}

	case H4:
		s := NewState(p, c)
		ConstructH4(s, rng)
		aisles := Refine(s, s.SelectedAisles(), rng)
		return Solution{Orders: s.SelectedOrders(), Aisles: aisles}

	default: // H2
		s := NewState(p, c)
		aisles := ConstructH2(s, c, rng)
		aisles = Refine(s, aisles, rng)
		return Solution{Orders: s.SelectedOrders(), Aisles: aisles}
	}
}

// Driver runs many independent GRASP restarts across goroutines and keeps
// the best feasible Solution found, under a mutex-guarded incumbent slot
// with an atomic fast-path score for cheap comparisons. Workers stop
// cooperatively once no restart has improved the incumbent for the
// configured patience window, or when ctx is cancelled.
//
// Grounded on gitrdm-gokando's pkg/minikanren/optimize_parallel.go's
// solveOptimalParallel: mutex-guarded best slot, atomic fast-path reads,
// WaitGroup join, generalized here to a stagnation-based stopping rule
// instead of branch-and-bound exhaustion.
type Driver struct {
	p   *Problem
	c   *Caches
	cfg *driverConfig

	// OnImprovement, if set, is invoked synchronously (under the incumbent
	// lock) every time a worker installs a new best Solution.
	OnImprovement func(Improvement)

	// OnRestart, if set, is invoked after every construct+refine restart
	// (feasible or not), with the wall-clock duration of that restart.
	OnRestart func(time.Duration)

	// OnVerifyReject, if set, is invoked whenever the independent
	// feasibility verifier (Verify) rejects a restart's candidate.
	OnVerifyReject func()
}

// NewDriver constructs a Driver over p and c, applying opts atop sensible
// defaults (H2, DefaultPatience, 1 worker).
func NewDriver(p *Problem, c *Caches, opts ...DriverOption) *Driver {
	cfg := defaultDriverConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return &Driver{p: p, c: c, cfg: cfg}
}

// Run launches cfg.workers goroutines, each repeatedly restarting the
// configured heuristic, until patience elapses since the last incumbent
// improvement or ctx is done. Returns the best feasible Solution found, or
// ErrNoFeasibleSolution if no worker produced a feasible Solution with a
// positive score (the best slot starts at score 0, so a score-0 candidate
// such as the empty selection never replaces it).
func (d *Driver) Run(ctx context.Context) (Solution, float64, error) {
	start := time.Now()

	var mu sync.Mutex
	var best Solution
	haveBest := false
	var bestScoreBits atomic.Uint64 // math.Float64bits(bestScore), 0 until first incumbent
	lastImprovement := time.Now()   // guarded by mu

	workers := d.cfg.workers
	if workers < 1 {
		workers = 1
	}

	seed := d.cfg.seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for wkr := 0; wkr < workers; wkr++ {
		go func(id int) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, uint64(id)+1))

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				mu.Lock()
				stagnant := time.Since(lastImprovement) > d.cfg.patience
				mu.Unlock()
				if stagnant {
					return
				}

				restartStart := time.Now()
				candidate := runOnce(d.p, d.c, d.cfg.heuristic, rng)
				if d.OnRestart != nil {
					d.OnRestart(time.Since(restartStart))
				}
				if err := Verify(d.p, candidate); err != nil {
					if d.OnVerifyReject != nil {
						d.OnVerifyReject()
					}
					continue
				}
				score := candidate.Score(d.c)

				if bestScoreBits.Load() != 0 && score <= math.Float64frombits(bestScoreBits.Load()) {
					continue
				}

				mu.Lock()
				if score > 0 && (!haveBest || score > best.Score(d.c)) {
					best = candidate
					haveBest = true
					bestScoreBits.Store(math.Float64bits(score))
					lastImprovement = time.Now()
					if d.OnImprovement != nil {
						d.OnImprovement(Improvement{
							Worker:   id,
							Solution: candidate,
							Score:    score,
							Elapsed:  time.Since(start),
						})
					}
				}
				mu.Unlock()
			}
		}(wkr)
	}

	wg.Wait()

	if !haveBest {
		return Solution{}, 0, ErrNoFeasibleSolution
	}
	return best, best.Score(d.c), nil
}
