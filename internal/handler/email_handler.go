package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/dto"
	"github.com/moatezLita/salesGPT/internal/service"
)

// EmailHandler exposes cold email endpoints.
type EmailHandler struct {
	service *service.EmailService
	logger  *zap.Logger
}

// NewEmailHandler creates a new handler instance.
func NewEmailHandler(service *service.EmailService, logger *zap.Logger) *EmailHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailHandler{service: service, logger: logger.Named("handler")}
}

// Generate handles POST /api/v1/generate-email/:analysis_id requests.
func (h *EmailHandler) Generate(c echo.Context) error {
	var req dto.GenerateEmailRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.Generate(c.Request().Context(), c.Param("analysis_id"), service.GenerateEmailInput{
		BusinessInfo:  req.BusinessInfo,
		TargetPersona: req.TargetPersona,
		Tone:          req.Tone,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return Success(c, http.StatusOK, map[string]any{
		"email_id": record.ID,
		"emails":   record.Emails,
	})
}

// List handles GET /api/v1/emails/:analysis_id requests.
func (h *EmailHandler) List(c echo.Context) error {
	records, err := h.service.List(c.Request().Context(), c.Param("analysis_id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return Success(c, http.StatusOK, map[string]any{"emails": records})
}
