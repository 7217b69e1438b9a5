// Package metrics provides Prometheus metrics for glucolog.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"glucolog/internal/domain"
)

const namespace = "glucolog"

// Registry owns the collectors for one process. Each Registry is
// independent so tests can build as many as they like.
type Registry struct {
	reg *prometheus.Registry

	readingsRecorded *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New builds a registry with process and Go runtime collectors, plus a
// gauge that reports the current size of store.
func New(store domain.ReadingStore) *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		readingsRecorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "readings_recorded_total",
				Help:      "Total number of glucose readings recorded",
			},
			[]string{"meal_context", "status"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.readingsRecorded,
		r.httpRequests,
		r.httpDuration,
	)
	if store != nil {
		r.reg.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_readings",
				Help:      "Number of readings held in memory",
			},
			func() float64 { return float64(store.Len()) },
		))
	}
	return r
}

// ReadingRecorded counts a stored reading by meal context and status.
func (r *Registry) ReadingRecorded(rd domain.Reading, abnormal bool) {
	status := "normal"
	if abnormal {
		status = "abnormal"
	}
	r.readingsRecorded.WithLabelValues(string(rd.MealContext), status).Inc()
}

// ObserveRequest records one finished HTTP request.
func (r *Registry) ObserveRequest(route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
