package scraper

import (
	"context"

	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/entity"
	"github.com/moatezLita/salesGPT/internal/metrics"
)

// PageFetcher retrieves raw markup for a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Page, error)
}

// Scraper fetches a page and extracts its structured content.
type Scraper struct {
	fetcher PageFetcher
	logger  *zap.Logger
}

// New constructs a Scraper. A nil logger disables logging.
func New(fetcher PageFetcher, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{fetcher: fetcher, logger: logger.Named("scraper")}
}

// Scrape downloads rawURL and extracts it against the post-redirect URL.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (entity.ScrapedSite, error) {
	page, err := s.fetcher.Fetch(ctx, rawURL)
	metrics.ObserveStage(metrics.StageFetch, err)
	if err != nil {
		s.logger.Warn("fetch failed", zap.String("url", rawURL), zap.Error(err))
		return entity.ScrapedSite{}, err
	}

	site := Extract(page.Body, page.FinalURL)
	site.FinalURL = page.FinalURL

	s.logger.Debug("page scraped",
		zap.String("url", rawURL),
		zap.String("final_url", page.FinalURL),
		zap.Int("status", page.StatusCode),
		zap.Int("content_length", len(site.MainContent)),
		zap.Int("social_links", len(site.SocialLinks)),
	)
	return site, nil
}
