package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by the engine lifecycle hooks.
type Metrics struct {
	Simulations        *prometheus.CounterVec
	Explorations       *prometheus.CounterVec
	ActiveExplorations prometheus.Gauge
	Paths              *prometheus.CounterVec
	DepthLimits        prometheus.Counter
	PathsPerSearch     prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Simulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_simulations_total",
				Help: "Total number of deterministic simulations",
			},
			[]string{"accepted"},
		),
		Explorations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_explorations_total",
				Help: "Total number of finished nondeterministic explorations",
			},
			[]string{"outcome"},
		),
		ActiveExplorations: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "automata_explorations_active",
				Help: "Number of explorations currently running",
			},
		),
		Paths: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_paths_total",
				Help: "Total number of paths reported by explorations",
			},
			[]string{"result", "reason"},
		),
		DepthLimits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "automata_depth_limit_reached_total",
				Help: "Number of explorations that hit the epsilon-depth limit",
			},
		),
		PathsPerSearch: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "automata_exploration_paths",
				Help:    "Paths explored per completed exploration",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.Simulations,
			m.Explorations,
			m.ActiveExplorations,
			m.Paths,
			m.DepthLimits,
			m.PathsPerSearch,
		)
	}
	return m
}

// Outcome labels of automata_explorations_total.
const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSimulate: func(ctx context.Context, e *domain.SimulationEvent) {
			m.Simulations.WithLabelValues(strconv.FormatBool(e.Accepted)).Inc()
		},
		OnExploreStart: func(ctx context.Context, e *domain.ExplorationEvent) {
			m.ActiveExplorations.Inc()
		},
		OnPathFound: func(ctx context.Context, p *domain.ExecutionPath, reason domain.RejectReason) {
			if p.Accepted {
				m.Paths.WithLabelValues("accepting", "").Inc()
				return
			}
			m.Paths.WithLabelValues("rejected", string(reason)).Inc()
		},
		OnDepthLimit: func(ctx context.Context, e *domain.ExplorationEvent) {
			m.DepthLimits.Inc()
		},
		OnExploreEnd: func(ctx context.Context, e *domain.ExplorationEvent) {
			m.ActiveExplorations.Dec()
			switch {
			case e.Cancelled:
				m.Explorations.WithLabelValues(OutcomeCancelled).Inc()
			case e.Err != nil:
				m.Explorations.WithLabelValues(OutcomeFailed).Inc()
			default:
				m.Explorations.WithLabelValues(OutcomeCompleted).Inc()
				if e.Summary != nil {
					m.PathsPerSearch.Observe(float64(e.Summary.TotalPathsExplored))
				}
			}
		},
	}
}
