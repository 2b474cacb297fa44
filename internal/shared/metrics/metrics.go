package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resumescore"

var (
	registry = prometheus.NewRegistry()

	analysisStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_started_total",
		Help:      "Total analyses started.",
	})
	analysisCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_completed_total",
		Help:      "Total analyses completed.",
	})
	analysisFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_failed_total",
		Help:      "Total analyses failed, by error code.",
	}, []string{"code"})
	analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_ms",
		Help:      "Analysis duration in milliseconds.",
		Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})
	overallScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "overall_score",
		Help:      "Distribution of overall resume scores.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	})
	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "result_cache_lookups_total",
		Help:      "Result cache lookups by outcome.",
	}, []string{"outcome"})
	suggestionTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suggestion_transitions_total",
		Help:      "Suggestion status changes by target status.",
	}, []string{"status"})
	jobs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "jobs_total",
		Help:      "Analysis jobs handled by the worker, by outcome.",
	}, []string{"outcome"})
	rateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter, by group.",
	}, []string{"group"})
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "path", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		analysisStarted, analysisCompleted, analysisFailed, analysisDuration, overallScore,
		cacheLookups, suggestionTransitions, jobs, rateLimited, httpRequests, httpDuration,
	)
}

// IncRateLimited counts a request rejected in group.
func IncRateLimited(group string) { rateLimited.WithLabelValues(group).Inc() }

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStarted.Inc()
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	analysisCompleted.Inc()
}

// IncAnalysisFailed increments the failed counter for an error code.
func IncAnalysisFailed(code string) {
	analysisFailed.WithLabelValues(code).Inc()
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// ObserveOverallScore records a completed analysis score.
func ObserveOverallScore(score int) {
	overallScore.Observe(float64(score))
}

func IncCacheHit()  { cacheLookups.WithLabelValues("hit").Inc() }
func IncCacheMiss() { cacheLookups.WithLabelValues("miss").Inc() }

// IncSuggestionTransition counts a suggestion moving to status.
func IncSuggestionTransition(status string) {
	suggestionTransitions.WithLabelValues(status).Inc()
}

func IncAnalysisJobsReceived()              { jobs.WithLabelValues("received").Inc() }
func IncAnalysisJobsCompleted()             { jobs.WithLabelValues("completed").Inc() }
func IncAnalysisJobsFailed()                { jobs.WithLabelValues("failed").Inc() }
func IncAnalysisJobsDeletedUnrecoverable() { jobs.WithLabelValues("deleted_unrecoverable").Inc() }

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
}

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Registry returns the registry backing Handler.
func Registry() *prometheus.Registry {
	return registry
}
