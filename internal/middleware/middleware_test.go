package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"

	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/middleware"
)

// setupMetricsRouter собирает роутер с метриками и маршрутами под каждый исход
func setupMetricsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.Metrics())
	router.GET("/found", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "https://example.com")
	})
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.GET("/broken", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	router.GET("/plain", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

// TestMetrics_OutcomeLabels проверяет маркировку исходов в счётчике редиректов
func TestMetrics_OutcomeLabels(t *testing.T) {
	router := setupMetricsRouter()

	for _, path := range []string{"/found", "/missing", "/broken", "/plain"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `shortlinks_redirect_requests_total{outcome="redirect"}`)
	assert.Contains(t, body, `shortlinks_redirect_requests_total{outcome="not_found"}`)
	assert.Contains(t, body, `shortlinks_redirect_requests_total{outcome="error"}`)
	assert.Contains(t, body, `shortlinks_redirect_requests_total{outcome="other"}`)
	assert.Contains(t, body, "shortlinks_redirect_duration_seconds")
}

// TestRequestLogger_NilLogger: middleware с nil-логгером пропускает запрос дальше
func TestRequestLogger_NilLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.RequestLogger(nil))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
