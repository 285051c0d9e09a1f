package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/meihua/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the service. Castings are counted
// through engine hooks, requests through HTTP middleware.
type Metrics struct {
	registry  *prometheus.Registry
	castings  *prometheus.CounterVec
	relations *prometheus.CounterVec
	requests  *prometheus.HistogramVec
}

// NewMetrics registers the collectors on a fresh registry, together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		castings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meihua",
			Name:      "castings_total",
			Help:      "Castings accepted by the engine, by method.",
		}, []string{"method"}),
		relations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meihua",
			Name:      "relation_total",
			Help:      "Derived readings, by body/use five-element relation.",
		}, []string{"relation"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "meihua",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
	m.registry.MustRegister(
		m.castings,
		m.relations,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks returns engine lifecycle hooks that feed the casting counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCast: func(_ context.Context, e *domain.CastEvent) {
			m.castings.WithLabelValues(e.Casting.Method.Key()).Inc()
		},
		OnReading: func(_ context.Context, e *domain.ReadingEvent) {
			m.relations.WithLabelValues(e.Reading.Hint.Relation.Key()).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware observes request latency. The route label is the chi pattern, so
// path parameters do not explode the label space.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
