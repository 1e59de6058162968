package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/entity"
)

type pgxPool interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

var _ pgxPool = (*pgxpool.Pool)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
    id UUID PRIMARY KEY,
    seq BIGINT GENERATED ALWAYS AS IDENTITY,
    url TEXT NOT NULL,
    website_data JSONB NOT NULL,
    analysis JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC, seq DESC);

CREATE TABLE IF NOT EXISTS emails (
    id UUID PRIMARY KEY,
    analysis_id TEXT NOT NULL,
    emails JSONB NOT NULL,
    business_info JSONB,
    opportunity JSONB,
    target_persona TEXT NOT NULL,
    tone TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS emails_analysis_id_idx ON emails (analysis_id);
`

// PostgresStore implements Store with JSONB payload columns.
type PostgresStore struct {
	pool   pgxPool
	logger *zap.Logger
	clock  clock
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore wraps pool and creates the tables when missing.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) (*PostgresStore, error) {
	store := newPostgresStore(pool, logger)
	if _, err := store.pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return store, nil
}

func newPostgresStore(pool pgxPool, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{pool: pool, logger: logger.Named("postgres")}
}

func (s *PostgresStore) SaveAnalysis(ctx context.Context, record entity.AnalysisRecord) (*entity.AnalysisRecord, error) {
	now := s.clock.now()
	record.ID = uuid.NewString()
	record.Website = withDefaults(record.Website)
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.Analysis == nil {
		record.Analysis = entity.AnalysisResult{}
	}

	websiteJSON, err := json.Marshal(record.Website)
	if err != nil {
		return nil, fmt.Errorf("encode website data: %w", err)
	}
	analysisJSON, err := json.Marshal(record.Analysis)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}

	query := `
        INSERT INTO analyses (id, url, website_data, analysis, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	if _, err := s.pool.Exec(ctx, query, record.ID, record.URL, websiteJSON, analysisJSON, record.CreatedAt, record.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert analysis for %s: %w", record.URL, err)
	}
	return &record, nil
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*entity.AnalysisRecord, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	query := `
        SELECT id, url, website_data, analysis, created_at, updated_at
        FROM analyses
        WHERE id = $1
    `
	record, err := scanAnalysis(s.pool.QueryRow(ctx, query, parsed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query analysis %s: %w", id, err)
	}
	return record, nil
}

func (s *PostgresStore) ListAnalyses(ctx context.Context) ([]entity.AnalysisRecord, error) {
	query := `
        SELECT id, url, website_data, analysis, created_at, updated_at
        FROM analyses
        ORDER BY created_at DESC, seq DESC
        LIMIT $1
    `
	rows, err := s.pool.Query(ctx, query, ListLimit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	records := make([]entity.AnalysisRecord, 0)
	for rows.Next() {
		record, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) SaveEmail(ctx context.Context, record entity.EmailRecord) (*entity.EmailRecord, error) {
	record.ID = uuid.NewString()
	record.CreatedAt = s.clock.now()
	if record.Emails == nil {
		record.Emails = []entity.EmailDraft{}
	}

	emailsJSON, err := json.Marshal(record.Emails)
	if err != nil {
		return nil, fmt.Errorf("encode emails: %w", err)
	}
	var businessJSON, opportunityJSON []byte
	if record.BusinessInfo != nil {
		if businessJSON, err = json.Marshal(record.BusinessInfo); err != nil {
			return nil, fmt.Errorf("encode business info: %w", err)
		}
	}
	if len(record.Opportunity) > 0 {
		if opportunityJSON, err = json.Marshal(record.Opportunity); err != nil {
			return nil, fmt.Errorf("encode opportunity: %w", err)
		}
	}

	query := `
        INSERT INTO emails (id, analysis_id, emails, business_info, opportunity, target_persona, tone, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	if _, err := s.pool.Exec(ctx, query,
		record.ID,
		record.AnalysisID,
		emailsJSON,
		businessJSON,
		opportunityJSON,
		record.TargetPersona,
		record.Tone,
		record.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert emails for analysis %s: %w", record.AnalysisID, err)
	}
	return &record, nil
}

func (s *PostgresStore) ListEmails(ctx context.Context, analysisID string) ([]entity.EmailRecord, error) {
	query := `
        SELECT id, analysis_id, emails, business_info, opportunity, target_persona, tone, created_at
        FROM emails
        WHERE analysis_id = $1
        ORDER BY created_at ASC, id ASC
    `
	rows, err := s.pool.Query(ctx, query, analysisID)
	if err != nil {
		return nil, fmt.Errorf("list emails for analysis %s: %w", analysisID, err)
	}
	defer rows.Close()

	records := make([]entity.EmailRecord, 0)
	for rows.Next() {
		var (
			record          entity.EmailRecord
			id              uuid.UUID
			emailsJSON      []byte
			businessJSON    []byte
			opportunityJSON []byte
		)
		if err := rows.Scan(&id, &record.AnalysisID, &emailsJSON, &businessJSON, &opportunityJSON, &record.TargetPersona, &record.Tone, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan emails: %w", err)
		}
		record.ID = id.String()
		record.CreatedAt = record.CreatedAt.UTC()

		if err := json.Unmarshal(emailsJSON, &record.Emails); err != nil {
			return nil, fmt.Errorf("decode emails: %w", err)
		}
		if len(businessJSON) > 0 {
			if err := json.Unmarshal(businessJSON, &record.BusinessInfo); err != nil {
				return nil, fmt.Errorf("decode business info: %w", err)
			}
		}
		if len(opportunityJSON) > 0 {
			if err := json.Unmarshal(opportunityJSON, &record.Opportunity); err != nil {
				return nil, fmt.Errorf("decode opportunity: %w", err)
			}
		}
		if record.Emails == nil {
			record.Emails = []entity.EmailDraft{}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate emails: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close(context.Context) error {
	s.logger.Info("closing pool")
	s.pool.Close()
	return nil
}

func scanAnalysis(row pgx.Row) (*entity.AnalysisRecord, error) {
	var (
		record       entity.AnalysisRecord
		id           uuid.UUID
		websiteJSON  []byte
		analysisJSON []byte
	)
	if err := row.Scan(&id, &record.URL, &websiteJSON, &analysisJSON, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return nil, err
	}

	record.ID = id.String()
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()
	if err := json.Unmarshal(websiteJSON, &record.Website); err != nil {
		return nil, fmt.Errorf("decode website data: %w", err)
	}
	if err := json.Unmarshal(analysisJSON, &record.Analysis); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	record.Website = withDefaults(record.Website)
	if record.Analysis == nil {
		record.Analysis = entity.AnalysisResult{}
	}
	return &record, nil
}
