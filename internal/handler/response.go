package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// Success sends fields as a flat object with status set to "success".
func Success(c echo.Context, status int, fields map[string]any) error {
	if status == 0 {
		status = http.StatusOK
	}
	payload := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["status"] = "success"
	return c.JSON(status, payload)
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, detail string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, ErrorResponse{Status: "error", Detail: detail})
}
