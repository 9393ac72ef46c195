package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/handler"
	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/models"
	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// stubResolver подставной резолвер, запоминающий последний запрос
type stubResolver struct {
	destination string
	err         error
	lastRequest *models.ResolveRequest
}

func (s *stubResolver) Resolve(ctx context.Context, req *models.ResolveRequest) (string, error) {
	s.lastRequest = req
	return s.destination, s.err
}

func setupRouter(resolver service.ResolverService) *gin.Engine {
	return handler.NewRouter(resolver, nil)
}

// TestRedirect_Success проверяет редирект с заголовком Location и пустым телом
func TestRedirect_Success(t *testing.T) {
	resolver := &stubResolver{destination: "https://example.com/page"}
	router := setupRouter(resolver)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/abc123", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/page", w.Header().Get("Location"))
}

// TestRedirect_RequestShape проверяет, что резолвер получает путь, хост,
// User-Agent и параметры запроса
func TestRedirect_RequestShape(t *testing.T) {
	resolver := &stubResolver{destination: "https://example.com"}
	router := setupRouter(resolver)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/:promo/abc123?fbclid=xyz", nil)
	req.Header.Set("X-Forwarded-Host", " link.promo.com ")
	req.Header.Set("User-Agent", "test-agent")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/:promo/abc123", resolver.lastRequest.Path)
	assert.Equal(t, "link.promo.com", resolver.lastRequest.ForwardedHost)
	assert.Equal(t, "test-agent", resolver.lastRequest.UserAgent)
	assert.Equal(t, "xyz", resolver.lastRequest.Query.Get("fbclid"))
}

// TestRedirect_VendorUserAgentFallback: при пустом User-Agent берётся X-User-Agent
func TestRedirect_VendorUserAgentFallback(t *testing.T) {
	resolver := &stubResolver{destination: "https://example.com"}
	router := setupRouter(resolver)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/abc123", nil)
	req.Header.Set("X-User-Agent", "vendor-agent")
	router.ServeHTTP(w, req)

	assert.Equal(t, "vendor-agent", resolver.lastRequest.UserAgent)
}

// TestRedirect_NotFound проверяет страницу 404
func TestRedirect_NotFound(t *testing.T) {
	resolver := &stubResolver{err: service.ErrNotFound}
	router := setupRouter(resolver)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/missing1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "404")
}

// TestRedirect_StorageError проверяет страницу 500 при сбое хранилища
func TestRedirect_StorageError(t *testing.T) {
	resolver := &stubResolver{err: errors.New("dynamodb unavailable")}
	router := setupRouter(resolver)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/abc123", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "500")
}

// TestHealthCheck проверяет endpoint здоровья
func TestHealthCheck(t *testing.T) {
	router := setupRouter(&stubResolver{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

// TestMetricsEndpoint проверяет экспорт метрик Prometheus
func TestMetricsEndpoint(t *testing.T) {
	router := setupRouter(&stubResolver{destination: "https://example.com"})

	// Немного трафика, чтобы счётчики появились в выдаче
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/abc123", nil)
	router.ServeHTTP(w, req)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shortlinks_redirect_requests_total")
}
