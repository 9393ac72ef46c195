package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	redirectRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shortlinks_redirect_requests_total",
		Help: "Redirect resolutions by outcome",
	}, []string{"outcome"})

	redirectDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shortlinks_redirect_duration_seconds",
		Help:    "Redirect resolution latency",
		Buckets: prometheus.DefBuckets,
	})
)

// Metrics считает исходы и длительность обработки редиректов
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		redirectDuration.Observe(time.Since(start).Seconds())
		redirectRequests.WithLabelValues(outcomeLabel(c.Writer.Status())).Inc()
	}
}

func outcomeLabel(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "error"
	case status == http.StatusNotFound:
		return "not_found"
	case status >= http.StatusMovedPermanently && status < http.StatusBadRequest:
		return "redirect"
	default:
		return "other"
	}
}
