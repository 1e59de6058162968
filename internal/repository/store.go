package repository

import (
	"context"
	"errors"
	"time"

	"github.com/moatezLita/salesGPT/internal/entity"
)

// ListLimit caps the number of analyses returned by ListAnalyses.
const ListLimit = 50

// ErrNotFound is returned when no record matches the identifier, including
// identifiers that are not well-formed keys for the backing store.
var ErrNotFound = errors.New("record not found")

// AnalysesRepository persists website analyses. Records are insert-only.
type AnalysesRepository interface {
	SaveAnalysis(ctx context.Context, record entity.AnalysisRecord) (*entity.AnalysisRecord, error)
	GetAnalysis(ctx context.Context, id string) (*entity.AnalysisRecord, error)
	ListAnalyses(ctx context.Context) ([]entity.AnalysisRecord, error)
}

// EmailsRepository persists generated email batches. Records are insert-only.
type EmailsRepository interface {
	SaveEmail(ctx context.Context, record entity.EmailRecord) (*entity.EmailRecord, error)
	ListEmails(ctx context.Context, analysisID string) ([]entity.EmailRecord, error)
}

// Store groups both collections behind one connection.
type Store interface {
	AnalysesRepository
	EmailsRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// clock truncates to milliseconds, the coarsest precision among the backends,
// so timestamps round-trip unchanged.
type clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (c clock) now() time.Time {
	if c == nil {
		return systemClock()
	}
	return c()
}

func withDefaults(site entity.ScrapedSite) entity.ScrapedSite {
	if site.SocialLinks == nil {
		site.SocialLinks = []string{}
	}
	return site
}
