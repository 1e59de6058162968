package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moatezLita/salesGPT/internal/config"
	"github.com/moatezLita/salesGPT/internal/llm"
	"github.com/moatezLita/salesGPT/internal/repository"
	"github.com/moatezLita/salesGPT/internal/scraper"
	"github.com/moatezLita/salesGPT/internal/service"
)

const sitePage = `<!doctype html>
<html>
<head><title>Example Domain</title></head>
<body>
<div>
    <h1>Example Domain</h1>
    <p>This domain is for use in illustrative examples in documents.</p>
    <a href="https://www.linkedin.com/company/example">LinkedIn</a>
</div>
</body>
</html>`

const analysisReply = `{"industry": "Technology", "target_audience": "Developers", "sales_approach": "Consultative"}`

const draftsReply = `{"emails": [
  {"subject": "Hey from LeadCo", "body": "Hi!\n\nQuick thought...", "call_to_action": "Grab a coffee?"},
  {"subject": "Loved your site", "body": "Hey there,\n\nSaw your docs...", "call_to_action": "Free Thursday?"}
]}`

// scriptedCompleter replays replies in order.
type scriptedCompleter struct {
	mu      sync.Mutex
	replies []string
	calls   int
}

func (s *scriptedCompleter) Complete(context.Context, llm.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.calls >= len(s.replies) {
		s.calls++
		return "", errors.New("no scripted reply")
	}
	reply := s.replies[s.calls]
	s.calls++
	return reply, nil
}

func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(sitePage))
	}))
	t.Cleanup(server.Close)
	return server
}

type testEnv struct {
	store     *repository.MemoryStore
	completer *scriptedCompleter
	analyses  *AnalysisHandler
	emails    *EmailHandler
}

func newTestEnv(replies ...string) *testEnv {
	store := repository.NewMemoryStore()
	completer := &scriptedCompleter{replies: replies}
	site := scraper.New(scraper.NewFetcher(5*time.Second), nil)

	analysisSvc := service.NewAnalysisService(site, service.NewBusinessAnalyzer(completer, nil), store, nil)
	emailSvc := service.NewEmailService(store, store, service.NewEmailComposer(completer, config.StrategyDirect, nil), nil)

	return &testEnv{
		store:     store,
		completer: completer,
		analyses:  NewAnalysisHandler(analysisSvc, nil),
		emails:    NewEmailHandler(emailSvc, nil),
	}
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}
