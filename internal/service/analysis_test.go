package service

import (
	"context"
	"errors"
	"testing"

	"github.com/moatezLita/salesGPT/internal/entity"
	"github.com/moatezLita/salesGPT/internal/repository"
	"github.com/moatezLita/salesGPT/internal/scraper"
)

func exampleSite() entity.ScrapedSite {
	return entity.ScrapedSite{
		Title:       "Example Domain",
		MainContent: "This domain is for use in illustrative examples in documents.",
		SocialLinks: []string{},
	}
}

func TestAnalysisService_Analyze(t *testing.T) {
	store := repository.NewMemoryStore()
	scrape := &stubScraper{site: exampleSite()}
	completer := &stubCompleter{replies: []string{analysisReply}}
	svc := NewAnalysisService(scrape, NewBusinessAnalyzer(completer, nil), store, nil)

	record, err := svc.Analyze(context.Background(), "  https://example.com  ", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ID == "" {
		t.Fatalf("expected an analysis id")
	}
	if record.URL != "https://example.com" {
		t.Fatalf("expected trimmed url, got %q", record.URL)
	}
	if record.Analysis["industry"] != "Technology" {
		t.Fatalf("unexpected analysis: %+v", record.Analysis)
	}
	if record.CreatedAt.IsZero() || !record.CreatedAt.Equal(record.UpdatedAt) {
		t.Fatalf("expected equal creation and update timestamps, got %v and %v", record.CreatedAt, record.UpdatedAt)
	}

	got, err := svc.Get(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if got.Website.Title != "Example Domain" || got.Analysis["industry"] != "Technology" {
		t.Fatalf("stored record differs: %+v", got)
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(list) != 1 || list[0].ID != record.ID {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestAnalysisService_AnalyzeFailures(t *testing.T) {
	tests := map[string]struct {
		url         string
		scraper     *stubScraper
		completer   *stubCompleter
		want        error
		scrapeCalls int
	}{
		"empty url": {
			url:       "   ",
			scraper:   &stubScraper{site: exampleSite()},
			completer: &stubCompleter{},
			want:      ErrInvalidInput,
		},
		"malformed url": {
			url:         "ftp://example.com",
			scraper:     &stubScraper{err: scraper.ErrInvalidURL},
			completer:   &stubCompleter{},
			want:        ErrInvalidInput,
			scrapeCalls: 1,
		},
		"unreachable site": {
			url:         "https://unreachable.invalid",
			scraper:     &stubScraper{err: &scraper.FetchError{URL: "https://unreachable.invalid", Err: errors.New("no such host")}},
			completer:   &stubCompleter{},
			want:        ErrFetchFailed,
			scrapeCalls: 1,
		},
		"model failure": {
			url:         "https://example.com",
			scraper:     &stubScraper{site: exampleSite()},
			completer:   &stubCompleter{errs: []error{errors.New("rate limited")}},
			want:        ErrAnalysisFailed,
			scrapeCalls: 1,
		},
		"model prose": {
			url:         "https://example.com",
			scraper:     &stubScraper{site: exampleSite()},
			completer:   &stubCompleter{replies: []string{"Here is my analysis of the company."}},
			want:        ErrAnalysisFailed,
			scrapeCalls: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store := repository.NewMemoryStore()
			svc := NewAnalysisService(tt.scraper, NewBusinessAnalyzer(tt.completer, nil), store, nil)

			record, err := svc.Analyze(context.Background(), tt.url, "")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if record != nil {
				t.Fatalf("expected no record, got %+v", record)
			}
			if tt.scraper.calls != tt.scrapeCalls {
				t.Fatalf("expected %d scrape calls, got %d", tt.scrapeCalls, tt.scraper.calls)
			}

			list, err := store.ListAnalyses(context.Background())
			if err != nil {
				t.Fatalf("unexpected list error: %v", err)
			}
			if len(list) != 0 {
				t.Fatalf("expected nothing persisted, got %d records", len(list))
			}
		})
	}
}

func TestAnalysisService_AnalyzePersistenceFailure(t *testing.T) {
	repo := &stubAnalysesRepository{
		save: func(context.Context, entity.AnalysisRecord) (*entity.AnalysisRecord, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := NewAnalysisService(&stubScraper{site: exampleSite()}, NewBusinessAnalyzer(&stubCompleter{replies: []string{analysisReply}}, nil), repo, nil)

	if _, err := svc.Analyze(context.Background(), "https://example.com", ""); !errors.Is(err, ErrPersistenceFailed) {
		t.Fatalf("expected ErrPersistenceFailed, got %v", err)
	}
}

func TestAnalysisService_Get(t *testing.T) {
	svc := NewAnalysisService(&stubScraper{}, NewBusinessAnalyzer(&stubCompleter{}, nil), repository.NewMemoryStore(), nil)

	for _, id := range []string{"", "not-a-valid-id", "4f3c2a1e-0000-4000-8000-000000000000"} {
		if _, err := svc.Get(context.Background(), id); !errors.Is(err, ErrAnalysisNotFound) {
			t.Fatalf("expected ErrAnalysisNotFound for %q, got %v", id, err)
		}
	}

	broken := &stubAnalysesRepository{
		get: func(context.Context, string) (*entity.AnalysisRecord, error) {
			return nil, errors.New("server selection timeout")
		},
		list: func(context.Context) ([]entity.AnalysisRecord, error) {
			return nil, errors.New("server selection timeout")
		},
	}
	svc = NewAnalysisService(&stubScraper{}, NewBusinessAnalyzer(&stubCompleter{}, nil), broken, nil)
	if _, err := svc.Get(context.Background(), "abc"); !errors.Is(err, ErrPersistenceFailed) {
		t.Fatalf("expected ErrPersistenceFailed, got %v", err)
	}
	if _, err := svc.List(context.Background()); !errors.Is(err, ErrPersistenceFailed) {
		t.Fatalf("expected ErrPersistenceFailed from list, got %v", err)
	}
}

func TestAnalysisService_ListEmpty(t *testing.T) {
	repo := &stubAnalysesRepository{
		list: func(context.Context) ([]entity.AnalysisRecord, error) { return nil, nil },
	}
	svc := NewAnalysisService(&stubScraper{}, NewBusinessAnalyzer(&stubCompleter{}, nil), repo, nil)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}
}
