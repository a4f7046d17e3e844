package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ActivationsTotal prometheus.Counter
	SearchesTotal    *prometheus.CounterVec
	BridgeMessages   *prometheus.CounterVec
	PhaseSeconds     *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ActivationsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "scout_activations_total",
			Help: "Total number of finder flow activations.",
		}),
		SearchesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "scout_searches_total",
			Help: "Total number of provider searches by outcome.",
		}, []string{"status"}),
		BridgeMessages: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "scout_bridge_messages_total",
			Help: "Total number of inbound bridge messages by validation outcome.",
		}, []string{"outcome"}),
		PhaseSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scout_phase_duration_seconds",
			Help:    "Duration of each activation phase.",
			Buckets: prometheus.DefBuckets,
		}, []string{"phase"}),
	}
}
