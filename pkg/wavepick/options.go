package wavepick

import "time"

// Heuristic selects which GRASP constructor the Driver runs each restart.
type Heuristic int

const (
	// H1 is the order-centric constructor with no caches (alpha=0.3).
	H1 Heuristic = iota
	// H2 is the cache-backed constructor (alpha=0.5).
	H2
	// H3 is the sampled order-centric constructor (alpha=0.5, sample=80).
	H3
	// H4 is the aisle-first constructor (alpha=0.5, sample=80).
	H4
)

// String renders the heuristic name, e.g. for CLI flags and logs.
func (h Heuristic) String() string {
	switch h {
	case H1:
		return "h1"
	case H2:
		return "h2"
	case H3:
		return "h3"
	case H4:
		return "h4"
	default:
		return "unknown"
	}
}

// DefaultPatience is the stagnation window used when no patience option is
// given: 3 seconds of no incumbent improvement across all workers ends the
// search (spec.md §9's Open Question decision).
const DefaultPatience = 3 * time.Second

// DriverOption configures a Driver constructed by NewDriver, following the
// teacher's functional-options pattern.
//
// Grounded on gitrdm-gokando's pkg/minikanren/optimize.go's OptimizeOption.
type DriverOption func(*driverConfig)

type driverConfig struct {
	heuristic Heuristic
	patience  time.Duration
	workers   int
	seed      uint64
}

func defaultDriverConfig() *driverConfig {
	return &driverConfig{
		heuristic: H2,
		patience:  DefaultPatience,
		workers:   1,
		seed:      0,
	}
}

// WithHeuristic selects the GRASP constructor used by every worker.
func WithHeuristic(h Heuristic) DriverOption {
	return func(c *driverConfig) { c.heuristic = h }
}

// WithPatience sets how long the Driver waits without an incumbent
// improvement before signaling all workers to stop.
func WithPatience(d time.Duration) DriverOption {
	return func(c *driverConfig) { c.patience = d }
}

// WithWorkers sets the number of parallel restart workers. Values <= 1
// select single-worker (still concurrent-safe) mode.
func WithWorkers(n int) DriverOption {
	return func(c *driverConfig) { c.workers = n }
}

// WithSeed sets the base seed each worker's RNG is derived from, for
// reproducible multi-start runs. A seed of 0 (the default) makes each Run
// draw a fresh random base seed.
func WithSeed(seed uint64) DriverOption {
	return func(c *driverConfig) { c.seed = seed }
}
