// Package metrics exposes Prometheus collectors for the API and a gin
// middleware that records every HTTP request.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "surge"

// Operation outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeUnknown   = "unknown"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
	OutcomeRecovered = "panic"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "path"})

	// OperationsTotal counts dispatched operations by kind, name and outcome.
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "graphql",
		Name:      "operations_total",
		Help:      "Total operations dispatched by the router",
	}, []string{"kind", "operation", "outcome"})

	// OperationDuration measures handler latency.
	OperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "graphql",
		Name:      "operation_duration_seconds",
		Help:      "Operation handler latency in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	}, []string{"kind", "operation"})

	// StoreWritesTotal counts document store flushes per backend.
	StoreWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "writes_total",
		Help:      "Total state document writes by backend and result",
	}, []string{"backend", "result"})
)

// ObserveOperation records one router dispatch.
func ObserveOperation(kind, operation, outcome string, elapsed time.Duration) {
	OperationsTotal.WithLabelValues(kind, operation, outcome).Inc()
	OperationDuration.WithLabelValues(kind, operation).Observe(elapsed.Seconds())
}

// ObserveStoreWrite records one document flush.
func ObserveStoreWrite(backend string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreWritesTotal.WithLabelValues(backend, result).Inc()
}

// Middleware records request count and latency. The route template
// (c.FullPath) is used as the path label to keep cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
