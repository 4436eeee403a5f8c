package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests        *prometheus.CounterVec
	LatencyMS       *prometheus.HistogramVec
	OrdersCreated   prometheus.Counter
	NumberConflicts prometheus.Counter
	ArchiveRuns     *prometheus.CounterVec
}

func New() *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "canteen",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "canteen",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "canteen",
		Name:      "orders_created_total",
		Help:      "Orders successfully placed.",
	})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "canteen",
		Name:      "order_number_conflicts_total",
		Help:      "Order number minting races retried.",
	})
	archives := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "canteen",
		Name:      "archive_runs_total",
		Help:      "Daily archive job runs by outcome.",
	}, []string{"outcome"})

	prometheus.MustRegister(requests, latency, created, conflicts, archives)
	return &Metrics{
		Requests:        requests,
		LatencyMS:       latency,
		OrdersCreated:   created,
		NumberConflicts: conflicts,
		ArchiveRuns:     archives,
	}
}

// Middleware records request counts and latency per handled route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.Requests.WithLabelValues(handler, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
