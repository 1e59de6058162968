package service

import (
	"context"
	"errors"
	"sync"

	"github.com/moatezLita/salesGPT/internal/entity"
	"github.com/moatezLita/salesGPT/internal/llm"
)

const analysisReply = `{
  "industry": "Technology",
  "market_position": "Reference domain",
  "products_services": ["Documentation examples"],
  "target_audience": "Developers",
  "unique_selling_points": ["Reserved by IANA"],
  "brand_voice": "Neutral",
  "customer_pain_points": ["Needing a safe example URL"],
  "competitors": ["example.org"],
  "sales_approach": "Not applicable"
}`

const opportunityReply = `{
  "pain_points": ["Manual lead research"],
  "benefits": ["Faster outreach"],
  "value_metrics": ["5 hours saved per week"],
  "competitive_edges": ["Website-grounded personalization"],
  "use_cases": ["Outbound campaigns"]
}`

const draftsReply = `{"emails": [
  {"subject": "Quick idea for Example", "body": "Hi there,\n\nWe noticed...", "call_to_action": "Open to a 15 minute call?"},
  {"subject": "Saving your team time", "body": "Hello,\n\nTeams like yours...", "call_to_action": "Reply with a good time"}
]}`

// stubCompleter replays replies in order and records every request.
type stubCompleter struct {
	mu       sync.Mutex
	replies  []string
	errs     []error
	requests []llm.Request
}

func (s *stubCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := len(s.requests)
	s.requests = append(s.requests, req)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return "", errors.New("unexpected completion call")
}

type stubScraper struct {
	site  entity.ScrapedSite
	err   error
	calls int
}

func (s *stubScraper) Scrape(_ context.Context, rawURL string) (entity.ScrapedSite, error) {
	s.calls++
	if s.err != nil {
		return entity.ScrapedSite{}, s.err
	}
	site := s.site
	if site.FinalURL == "" {
		site.FinalURL = rawURL
	}
	return site, nil
}

type stubAnalysesRepository struct {
	save func(ctx context.Context, record entity.AnalysisRecord) (*entity.AnalysisRecord, error)
	get  func(ctx context.Context, id string) (*entity.AnalysisRecord, error)
	list func(ctx context.Context) ([]entity.AnalysisRecord, error)
}

func (s *stubAnalysesRepository) SaveAnalysis(ctx context.Context, record entity.AnalysisRecord) (*entity.AnalysisRecord, error) {
	if s.save != nil {
		return s.save(ctx, record)
	}
	return nil, errors.New("save not implemented")
}

func (s *stubAnalysesRepository) GetAnalysis(ctx context.Context, id string) (*entity.AnalysisRecord, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return nil, errors.New("get not implemented")
}

func (s *stubAnalysesRepository) ListAnalyses(ctx context.Context) ([]entity.AnalysisRecord, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, errors.New("list not implemented")
}

type stubEmailsRepository struct {
	save func(ctx context.Context, record entity.EmailRecord) (*entity.EmailRecord, error)
	list func(ctx context.Context, analysisID string) ([]entity.EmailRecord, error)
}

func (s *stubEmailsRepository) SaveEmail(ctx context.Context, record entity.EmailRecord) (*entity.EmailRecord, error) {
	if s.save != nil {
		return s.save(ctx, record)
	}
	return nil, errors.New("save not implemented")
}

func (s *stubEmailsRepository) ListEmails(ctx context.Context, analysisID string) ([]entity.EmailRecord, error) {
	if s.list != nil {
		return s.list(ctx, analysisID)
	}
	return nil, errors.New("list not implemented")
}
