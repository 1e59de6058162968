package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/service"
)

func TestRespondError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	tests := map[string]struct {
		err          error
		expectCode   int
		expectDetail string
	}{
		"not found": {
			err:          service.ErrAnalysisNotFound,
			expectCode:   http.StatusNotFound,
			expectDetail: "analysis not found",
		},
		"invalid input": {
			err:          fmt.Errorf("%w: url is required", service.ErrInvalidInput),
			expectCode:   http.StatusBadRequest,
			expectDetail: "invalid input: url is required",
		},
		"fetch failed": {
			err:          fmt.Errorf("%w: %w", service.ErrFetchFailed, cause),
			expectCode:   http.StatusBadRequest,
			expectDetail: "failed to fetch website: dial tcp: connection refused",
		},
		"analysis failed": {
			err:          fmt.Errorf("%w: %w", service.ErrAnalysisFailed, cause),
			expectCode:   http.StatusBadRequest,
			expectDetail: "analysis failed: dial tcp: connection refused",
		},
		"email generation failed": {
			err:          fmt.Errorf("%w: %w", service.ErrEmailGenerationFailed, cause),
			expectCode:   http.StatusBadRequest,
			expectDetail: "email generation failed: dial tcp: connection refused",
		},
		"persistence failed": {
			err:          fmt.Errorf("%w: %w", service.ErrPersistenceFailed, cause),
			expectCode:   http.StatusInternalServerError,
			expectDetail: internalErrorDetail,
		},
		"unexpected": {
			err:          cause,
			expectCode:   http.StatusInternalServerError,
			expectDetail: internalErrorDetail,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodGet, "/", "")
			if err := respondError(c, zap.NewNop(), tt.err); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, rec.Code)
			}
			payload := decodeBody(t, rec)
			if payload["status"] != "error" || payload["detail"] != tt.expectDetail {
				t.Fatalf("unexpected payload: %+v", payload)
			}
		})
	}
}
