package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics instruments backend calls.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wrench",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Backend requests by method and status code.",
		}, []string{"code", "method"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wrench",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "wrench",
			Subsystem: "api",
			Name:      "requests_in_flight",
			Help:      "Backend requests awaiting a response.",
		}),
	}
}

func (m *Metrics) Interceptor() Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return promhttp.InstrumentRoundTripperInFlight(m.inFlight,
			promhttp.InstrumentRoundTripperCounter(m.requests,
				promhttp.InstrumentRoundTripperDuration(m.duration, next)))
	}
}
