package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_analyses_total",
			Help: "Completed symptom analyses by kind and risk tier",
		},
		[]string{"kind", "risk_level"},
	)

	analysesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_analyses_failed_total",
			Help: "Failed symptom analyses by kind",
		},
		[]string{"kind"},
	)

	analysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triage_analysis_duration_seconds",
			Help:    "Symptom analysis duration in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"kind"},
	)

	bundlesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_recommendation_bundles_total",
			Help: "Recommendation bundles generated, by branch",
		},
		[]string{"branch"},
	)
)

// Handler exposes the default registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Middleware records request counts and latency by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordAnalysis records a completed analysis.
func RecordAnalysis(kind, riskLevel string, elapsed time.Duration) {
	if riskLevel == "" {
		riskLevel = "none"
	}
	analysesTotal.WithLabelValues(kind, riskLevel).Inc()
	analysisDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// RecordAnalysisFailed records a failed analysis.
func RecordAnalysisFailed(kind string) {
	analysesFailed.WithLabelValues(kind).Inc()
}

// RecordBundle records a generated recommendation bundle. Generic bundles
// have no matched condition.
func RecordBundle(generic bool) {
	branch := "specific"
	if generic {
		branch = "generic"
	}
	bundlesTotal.WithLabelValues(branch).Inc()
}
