// Package metrics exposes Prometheus counters for HTTP traffic and payment
// plan generation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	plans           prometheus.Counter
	cappedPlans     prometheus.Counter
	planDays        prometheus.Histogram
}

// New builds a Metrics backed by its own registry, so tests can create as
// many as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gigledger_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gigledger_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		plans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gigledger_payment_plans_total",
			Help: "Payment plans generated.",
		}),
		cappedPlans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gigledger_payment_plans_capped_total",
			Help: "Payment plans that hit the day limit with bills still unpaid.",
		}),
		planDays: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gigledger_payment_plan_days",
			Help:    "Number of simulated days per payment plan.",
			Buckets: []float64{1, 7, 14, 30, 60, 90, 180, 366},
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.requestDuration, m.plans, m.cappedPlans, m.planDays,
	)
	return m
}

// Middleware records one sample per request, labelled by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// ObservePlan records a generated plan's length and whether it was capped.
func (m *Metrics) ObservePlan(days int, capped bool) {
	m.plans.Inc()
	m.planDays.Observe(float64(days))
	if capped {
		m.cappedPlans.Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
