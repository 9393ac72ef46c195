package handler

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/middleware"
	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

func NewRouter(resolver service.ResolverService, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())

	// Страницы 404/500 вшиты в бинарь: сервис не зависит от файлов рядом
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", HealthCheck)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Редирект: "/linkId" и легаси "/:account/linkId"
	redirectHandler := NewRedirectHandler(resolver, logger)
	router.GET("/:first", redirectHandler.Redirect)
	router.GET("/:first/:second", redirectHandler.Redirect)

	return router
}
