package syncstore

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes counters for the reconciliation loop. Register one instance
// per store; tests use a private registry to avoid duplicate registration.
type Metrics struct {
	fetches       *prometheus.CounterVec
	staleFetches  prometheus.Counter
	rollbacks     prometheus.Counter
	conflicts     prometheus.Counter
	pushEvents    *prometheus.CounterVec
	droppedEvents prometheus.Counter
}

// NewMetrics creates and registers the store counters on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ordersync_fetches_total",
			Help: "Reconciling fetches against the remote authority, by result.",
		}, []string{"result"}),
		staleFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ordersync_stale_fetch_responses_total",
			Help: "In-flight fetch responses discarded because a newer fetch was issued.",
		}),
		rollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ordersync_optimistic_rollbacks_total",
			Help: "Optimistic mutations reverted after a gateway failure.",
		}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ordersync_mutation_conflicts_total",
			Help: "Mutations rejected because another mutation was in flight for the order.",
		}),
		pushEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ordersync_push_events_total",
			Help: "Push events received, by kind.",
		}, []string{"kind"}),
		droppedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ordersync_push_events_dropped_total",
			Help: "Malformed push events logged and dropped.",
		}),
	}

	reg.MustRegister(
		m.fetches, m.staleFetches, m.rollbacks,
		m.conflicts, m.pushEvents, m.droppedEvents,
	)
	return m
}
