package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/models"
	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/service"
)

type RedirectHandler struct {
	resolver service.ResolverService
	logger   *zap.Logger
}

func NewRedirectHandler(resolver service.ResolverService, logger *zap.Logger) *RedirectHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedirectHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// Redirect godoc
// @Summary Redirect to destination URL
// @Description Resolve a short link and redirect to its destination
// @Tags redirect
// @Produce html
// @Success 302 {object} nil
// @Failure 404 {string} string "Not found page"
// @Failure 500 {string} string "Error page"
// @Router /{code} [get]
func (h *RedirectHandler) Redirect(c *gin.Context) {
	req := &models.ResolveRequest{
		Path:          c.Request.URL.Path,
		ForwardedHost: strings.TrimSpace(c.GetHeader("X-Forwarded-Host")),
		UserAgent:     userAgent(c),
		Query:         c.Request.URL.Query(),
		RawQuery:      c.Request.URL.RawQuery,
	}

	destination, err := h.resolver.Resolve(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.HTML(http.StatusNotFound, "404.html", nil)
			return
		}
		h.logger.Error("Failed to resolve short link",
			zap.String("path", req.Path),
			zap.Error(err),
		)
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	c.Redirect(http.StatusFound, destination)
}

// userAgent берёт User-Agent с вендорным запасным заголовком X-User-Agent
func userAgent(c *gin.Context) string {
	if ua := strings.TrimSpace(c.GetHeader("User-Agent")); ua != "" {
		return ua
	}
	return strings.TrimSpace(c.GetHeader("X-User-Agent"))
}
