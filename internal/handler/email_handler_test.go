package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/moatezLita/salesGPT/internal/entity"
)

func seedAnalysis(t *testing.T, env *testEnv) string {
	t.Helper()
	record, err := env.store.SaveAnalysis(context.Background(), entity.AnalysisRecord{
		URL:      "https://example.com",
		Analysis: entity.AnalysisResult{"industry": "Technology"},
	})
	if err != nil {
		t.Fatalf("seed analysis: %v", err)
	}
	return record.ID
}

func TestEmailHandler_Generate(t *testing.T) {
	env := newTestEnv(draftsReply)
	id := seedAnalysis(t, env)

	body := `{"business_info": {"company_name": "LeadCo", "business_type": "SaaS", "product_description": "Prospecting"}, "tone": "casual"}`
	c, rec := newJSONContext(http.MethodPost, "/api/v1/generate-email/"+id, body)
	c.SetParamNames("analysis_id")
	c.SetParamValues(id)

	if err := env.emails.Generate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	payload := decodeBody(t, rec)
	if payload["status"] != "success" || payload["email_id"] == "" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	emails, ok := payload["emails"].([]any)
	if !ok || len(emails) != 2 {
		t.Fatalf("expected two drafts, got %+v", payload["emails"])
	}
	for _, raw := range emails {
		draft := raw.(map[string]any)
		for _, key := range []string{"subject", "body", "call_to_action"} {
			if s, _ := draft[key].(string); s == "" {
				t.Fatalf("expected non-empty %s in %+v", key, draft)
			}
		}
	}

	stored, err := env.store.ListEmails(context.Background(), id)
	if err != nil {
		t.Fatalf("list emails: %v", err)
	}
	if len(stored) != 1 || stored[0].Tone != "casual" || stored[0].TargetPersona != "decision maker" {
		t.Fatalf("unexpected stored emails: %+v", stored)
	}
}

func TestEmailHandler_GenerateFailures(t *testing.T) {
	tests := map[string]struct {
		id         func(seeded string) string
		body       string
		replies    []string
		expectCode int
	}{
		"unknown analysis": {
			id:         func(string) string { return "nonexistent" },
			body:       `{}`,
			replies:    []string{draftsReply},
			expectCode: http.StatusNotFound,
		},
		"invalid json": {
			id:         func(seeded string) string { return seeded },
			body:       `{"tone": 5}`,
			expectCode: http.StatusBadRequest,
		},
		"model failure": {
			id:         func(seeded string) string { return seeded },
			body:       `{}`,
			replies:    []string{"Subject: hi"},
			expectCode: http.StatusBadRequest,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(tt.replies...)
			seeded := seedAnalysis(t, env)
			id := tt.id(seeded)

			c, rec := newJSONContext(http.MethodPost, "/api/v1/generate-email/"+id, tt.body)
			c.SetParamNames("analysis_id")
			c.SetParamValues(id)

			if err := env.emails.Generate(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectCode, rec.Code, rec.Body.String())
			}
			if decodeBody(t, rec)["status"] != "error" {
				t.Fatalf("expected error envelope, got %s", rec.Body.String())
			}

			stored, err := env.store.ListEmails(context.Background(), seeded)
			if err != nil {
				t.Fatalf("list emails: %v", err)
			}
			if len(stored) != 0 {
				t.Fatalf("expected nothing persisted, got %d", len(stored))
			}
		})
	}
}

func TestEmailHandler_ListEmpty(t *testing.T) {
	env := newTestEnv()
	c, rec := newJSONContext(http.MethodGet, "/api/v1/emails/unknown", "")
	c.SetParamNames("analysis_id")
	c.SetParamValues("unknown")

	if err := env.emails.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"emails":[]`) {
		t.Fatalf("expected empty list, got %d %s", rec.Code, rec.Body.String())
	}
}
