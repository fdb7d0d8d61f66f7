// Package metrics exposes Prometheus collectors for Driver runs: restarts
// attempted, improvements accepted, verifier rejections, the incumbent
// score and restart duration. cmd/wavepick updates them from the Driver's
// hooks.
//
// Grounded on joshuarotgers-USPS_Main/internal/metrics/metrics.go's
// dedicated-registry pattern.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for wavepick runs,
	// separate from the default global registry so library users can embed
	// it into their own HTTP exposition without collisions.
	Registry = prometheus.NewRegistry()

	// RestartsTotal counts construct+refine restarts attempted, by
	// heuristic.
	RestartsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "wavepick_restarts_total", Help: "Total construct+refine restarts attempted."},
		[]string{"heuristic"},
	)

	// ImprovementsTotal counts incumbent updates accepted into the best
	// slot, by heuristic.
	ImprovementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "wavepick_improvements_total", Help: "Total incumbent improvements accepted."},
		[]string{"heuristic"},
	)

	// VerifierRejectionsTotal counts candidates discarded by the
	// independent feasibility verifier (spec.md §4.6, §7).
	VerifierRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "wavepick_verifier_rejections_total", Help: "Total candidates rejected by the feasibility verifier."},
		[]string{"heuristic"},
	)

	// BestScore reports the current incumbent score.
	BestScore = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "wavepick_best_score", Help: "Current incumbent score (total units / aisles)."},
	)

	// RestartDuration records how long one construct+refine pass takes.
	RestartDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "wavepick_restart_duration_seconds", Help: "Construct+refine restart duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"heuristic"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors to Registry exactly once,
// alongside the standard Go runtime and process collectors.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(RestartsTotal)
		Registry.MustRegister(ImprovementsTotal)
		Registry.MustRegister(VerifierRejectionsTotal)
		Registry.MustRegister(BestScore)
		Registry.MustRegister(RestartDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
