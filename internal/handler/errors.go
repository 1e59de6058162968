package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/middleware"
	"github.com/moatezLita/salesGPT/internal/service"
)

const internalErrorDetail = "internal server error"

// respondError maps service failures onto status codes. Upstream failures the
// caller can act on are 400, missing resources 404, everything else 500 with
// a generic detail.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrAnalysisNotFound):
		return Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrFetchFailed),
		errors.Is(err, service.ErrAnalysisFailed),
		errors.Is(err, service.ErrEmailGenerationFailed):
		return Error(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed",
			zap.String("request_id", middleware.RequestIDFromContext(c)),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return Error(c, http.StatusInternalServerError, internalErrorDetail)
	}
}
