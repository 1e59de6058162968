package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and whether the model API key is configured.
type HealthHandler struct {
	apiKeySet bool
	now       func() time.Time
}

// NewHealthHandler creates a new handler instance.
func NewHealthHandler(apiKeySet bool) *HealthHandler {
	return &HealthHandler{apiKeySet: apiKeySet, now: time.Now}
}

// Check handles GET /health requests.
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":           "healthy",
		"timestamp":        h.now().UTC().Format(time.RFC3339),
		"groq_api_key_set": h.apiKeySet,
	})
}
