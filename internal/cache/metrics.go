package cache

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	lookups   *prometheus.CounterVec
	fills     *prometheus.CounterVec
	evictions prometheus.Counter
}

func newMetrics() *metrics {
	return &metrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "forum_permission",
				Subsystem: "cache",
				Name:      "lookups_total",
				Help:      "Cache lookups by result (hit, miss)",
			},
			[]string{"result"},
		),
		fills: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "forum_permission",
				Subsystem: "cache",
				Name:      "fills_total",
				Help:      "Completed cache fills by result (ok, error, discarded)",
			},
			[]string{"result"},
		),
		evictions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "forum_permission",
				Subsystem: "cache",
				Name:      "evictions_total",
				Help:      "Entries removed by explicit invalidation",
			},
		),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.lookups, m.fills, m.evictions} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
