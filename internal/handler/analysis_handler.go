package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/dto"
	"github.com/moatezLita/salesGPT/internal/service"
)

// AnalysisHandler exposes website analysis endpoints.
type AnalysisHandler struct {
	service *service.AnalysisService
	logger  *zap.Logger
}

// NewAnalysisHandler creates a new handler instance.
func NewAnalysisHandler(service *service.AnalysisService, logger *zap.Logger) *AnalysisHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisHandler{service: service, logger: logger.Named("handler")}
}

// AnalyzeWebsite handles POST /api/v1/analyze-website requests.
func (h *AnalysisHandler) AnalyzeWebsite(c echo.Context) error {
	var req dto.AnalyzeWebsiteRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.Analyze(c.Request().Context(), req.URL, req.CustomNotes)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return Success(c, http.StatusOK, map[string]any{
		"analysis_id":  record.ID,
		"website_data": record.Website,
		"analysis":     record.Analysis,
	})
}

// List handles GET /api/v1/analyses requests.
func (h *AnalysisHandler) List(c echo.Context) error {
	records, err := h.service.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return Success(c, http.StatusOK, map[string]any{"analyses": records})
}

// Get handles GET /api/v1/analyses/:id requests.
func (h *AnalysisHandler) Get(c echo.Context) error {
	record, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return Success(c, http.StatusOK, map[string]any{"analysis": record})
}
