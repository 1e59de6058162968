package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/entity"
	"github.com/moatezLita/salesGPT/internal/metrics"
	"github.com/moatezLita/salesGPT/internal/repository"
	"github.com/moatezLita/salesGPT/internal/scraper"
)

// SiteScraper fetches and extracts a company website.
type SiteScraper interface {
	Scrape(ctx context.Context, rawURL string) (entity.ScrapedSite, error)
}

// Analyzer turns scraped content into a business analysis.
type Analyzer interface {
	Analyze(ctx context.Context, site entity.ScrapedSite, customNotes string) (entity.AnalysisResult, error)
}

// AnalysisService runs the scrape, analyze and store pipeline.
type AnalysisService struct {
	scraper  SiteScraper
	analyzer Analyzer
	repo     repository.AnalysesRepository
	logger   *zap.Logger
}

// NewAnalysisService creates a new instance of AnalysisService.
func NewAnalysisService(s SiteScraper, a Analyzer, repo repository.AnalysesRepository, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{scraper: s, analyzer: a, repo: repo, logger: logger.Named("analysis")}
}

// Analyze scrapes rawURL, analyzes it and persists the result. Nothing is
// stored unless every stage succeeds.
func (s *AnalysisService) Analyze(ctx context.Context, rawURL, customNotes string) (*entity.AnalysisRecord, error) {
	target := strings.TrimSpace(rawURL)
	if target == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}

	site, err := s.scraper.Scrape(ctx, target)
	if err != nil {
		if errors.Is(err, scraper.ErrInvalidURL) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	result, err := s.analyzer.Analyze(ctx, site, customNotes)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.SaveAnalysis(ctx, entity.AnalysisRecord{
		URL:      target,
		Website:  site,
		Analysis: result,
	})
	metrics.ObserveStage(metrics.StagePersist, err)
	if err != nil {
		s.logger.Error("save analysis failed", zap.String("url", target), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	s.logger.Info("analysis stored", zap.String("analysis_id", record.ID), zap.String("url", target))
	return record, nil
}

// Get returns one analysis. Unknown and malformed ids yield ErrAnalysisNotFound.
func (s *AnalysisService) Get(ctx context.Context, id string) (*entity.AnalysisRecord, error) {
	record, err := s.repo.GetAnalysis(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	return record, nil
}

// List returns the most recent analyses, newest first.
func (s *AnalysisService) List(ctx context.Context) ([]entity.AnalysisRecord, error) {
	records, err := s.repo.ListAnalyses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	if records == nil {
		records = []entity.AnalysisRecord{}
	}
	return records, nil
}
