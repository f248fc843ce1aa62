package remote

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK          = "ok"
	resultAPIError    = "api_error"
	resultTransport   = "transport_error"
	resultMalformed   = "malformed"
	resultClientError = "client_error"
)

var (
	remoteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "periods",
		Subsystem: "remote_api",
		Name:      "requests_total",
		Help:      "Total number of calls to the periods API broken down by operation and result.",
	}, []string{"operation", "result"})

	remoteLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "periods",
		Subsystem: "remote_api",
		Name:      "latency_seconds",
		Help:      "Latency distribution for calls to the periods API.",
		Buckets: []float64{
			0.005, 0.01, 0.02, 0.05,
			0.1, 0.2, 0.5,
			1, 2, 5, 10, 30,
		},
	}, []string{"operation", "result"})
)
