package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "directory",
		Name:      "intents_total",
		Help:      "Intents dispatched, by intent and result.",
	}, []string{"intent", "result"})

	WritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "directory",
		Name:      "store_writes_total",
		Help:      "Full-collection write-throughs, by result.",
	}, []string{"result"})

	SeedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "directory",
		Name:      "bootstrap_total",
		Help:      "Bootstrap outcomes: stored, seeded, fetch_failed, store_failed.",
	}, []string{"outcome"})

	Records = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "directory",
		Name:      "records",
		Help:      "Records in the canonical collection.",
	})

	Sessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "directory",
		Name:      "sessions",
		Help:      "Open viewer sessions.",
	})

	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "directory",
		Name:      "websocket_clients",
		Help:      "Connected websocket clients.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "directory",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Result labels an outcome as "ok" or "error".
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
