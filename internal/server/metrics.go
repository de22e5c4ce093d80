package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/limaJavier/coursegrid/pkg/pipeline"
)

// Metrics encapsulates the Prometheus instrumentation of the API and of the placement runs.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	runsTotal       *prometheus.CounterVec
	occurrences     *prometheus.CounterVec
	buildDuration   *prometheus.HistogramVec
	storedRuns      prometheus.GaugeFunc
}

// NewMetrics registers the collectors; storedRuns reports the size of the run store.
func NewMetrics(storedRuns func() float64) *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	runsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_runs_total",
		Help: "Total number of engine runs by outcome",
	}, []string{"engine", "outcome"})

	occurrences := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_occurrences_total",
		Help: "Occurrences handled by the placement engines",
	}, []string{"engine", "result"})

	buildDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_build_duration_seconds",
		Help:    "Duration of timetable builds in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"engine"})

	stored := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "timetable_stored_runs",
		Help: "Runs currently kept in memory",
	}, storedRuns)

	registry.MustRegister(requestDuration, requestTotal, runsTotal, occurrences, buildDuration, stored)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		runsTotal:       runsTotal,
		occurrences:     occurrences,
		buildDuration:   buildDuration,
		storedRuns:      stored,
	}
}

func (m *Metrics) Handler() http.Handler {
	return m.handler
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveRun records the outcome, duration and occurrence counts of every engine of a run
func (m *Metrics) ObserveRun(run pipeline.Run) {
	for _, result := range run.Results {
		engine := string(result.Engine)
		outcome := "complete"
		if !result.Verified {
			outcome = "unverified"
		} else if !result.Complete() {
			outcome = "incomplete"
		}

		m.runsTotal.WithLabelValues(engine, outcome).Inc()
		m.buildDuration.WithLabelValues(engine).Observe(result.Duration.Seconds())

		stats := result.Timetable.Stats
		m.occurrences.WithLabelValues(engine, "placed").Add(float64(stats.Placed))
		m.occurrences.WithLabelValues(engine, "failed").Add(float64(stats.Failed))
		m.occurrences.WithLabelValues(engine, "overbooked").Add(float64(stats.Overbooked))
		m.occurrences.WithLabelValues(engine, "cohort").Add(float64(stats.Cohort))
	}
}

// Middleware captures request metrics
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		m.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
