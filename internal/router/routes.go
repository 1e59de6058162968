package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moatezLita/salesGPT/internal/handler"
	middlewarepkg "github.com/moatezLita/salesGPT/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Health   *handler.HealthHandler
	Analyses *handler.AnalysisHandler
	Emails   *handler.EmailHandler
}

// Register wires all HTTP routes for the API. A nil tokens parser leaves
// /api/v1 open.
func Register(e *echo.Echo, tokens middlewarepkg.TokenParser, handlers Handlers) {
	e.GET("/health", handlers.Health.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	if tokens != nil {
		api.Use(middlewarepkg.JWT(tokens))
	}

	api.POST("/analyze-website", handlers.Analyses.AnalyzeWebsite)
	api.GET("/analyses", handlers.Analyses.List)
	api.GET("/analyses/:id", handlers.Analyses.Get)

	api.POST("/generate-email/:analysis_id", handlers.Emails.Generate)
	api.GET("/emails/:analysis_id", handlers.Emails.List)
}
