package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	process   prometheus.Histogram
	compounds prometheus.Counter
	rows      prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "samas",
			Name:      "requests_total",
			Help:      "HTTP requests by endpoint and status code.",
		}, []string{"endpoint", "code"}),
		process: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "samas",
			Name:      "process_seconds",
			Help:      "Time spent matching, expanding and annotating one text.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		compounds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "samas",
			Name:      "compounds_matched_total",
			Help:      "Compound occurrences recognized across all requests.",
		}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "samas",
			Name:      "dataset_rows",
			Help:      "Distinct compounds in the loaded dataset.",
		}),
	}
	m.registry.MustRegister(m.requests, m.process, m.compounds, m.rows)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// instrument counts requests to next under the given endpoint label.
func (m *metrics) instrument(endpoint string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.requests.WithLabelValues(endpoint, strconv.Itoa(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}
