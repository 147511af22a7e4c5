package materializer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "materializer_refresh_total",
			Help: "Material refresh attempts by outcome (refreshed, fresh, locked, failed)",
		},
		[]string{"key", "outcome"},
	)

	refreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "materializer_refresh_duration_seconds",
			Help:    "Duration of material recomputation including store",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"key"},
	)

	getTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "materializer_get_total",
			Help: "On-demand reads by result (hit, miss, computed)",
		},
		[]string{"key", "result"},
	)
)
