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
)

const (
	DefaultTargetPersona = "decision maker"
	DefaultTone          = "professional"
)

// Composer produces email drafts for an analysis.
type Composer interface {
	Compose(ctx context.Context, in ComposeInput) (*Composition, error)
}

// GenerateEmailInput carries the caller's options for one generation.
type GenerateEmailInput struct {
	BusinessInfo  *entity.BusinessInfo
	TargetPersona string
	Tone          string
}

// EmailService generates and stores outreach emails for stored analyses.
type EmailService struct {
	analyses repository.AnalysesRepository
	emails   repository.EmailsRepository
	composer Composer
	logger   *zap.Logger
}

// NewEmailService creates a new instance of EmailService.
func NewEmailService(analyses repository.AnalysesRepository, emails repository.EmailsRepository, composer Composer, logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailService{analyses: analyses, emails: emails, composer: composer, logger: logger.Named("email")}
}

// Generate drafts emails for analysisID and persists them. The analysis must
// exist; nothing is stored when drafting fails.
func (s *EmailService) Generate(ctx context.Context, analysisID string, in GenerateEmailInput) (*entity.EmailRecord, error) {
	id := strings.TrimSpace(analysisID)
	if id == "" {
		return nil, fmt.Errorf("%w: analysis_id is required", ErrInvalidInput)
	}

	analysis, err := s.analyses.GetAnalysis(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	persona := strings.TrimSpace(in.TargetPersona)
	if persona == "" {
		persona = DefaultTargetPersona
	}
	tone := strings.TrimSpace(in.Tone)
	if tone == "" {
		tone = DefaultTone
	}
	info := in.BusinessInfo
	if info != nil && info.IsZero() {
		info = nil
	}

	composition, err := s.composer.Compose(ctx, ComposeInput{
		Analysis:      analysis.Analysis,
		BusinessInfo:  info,
		TargetPersona: persona,
		Tone:          tone,
	})
	if err != nil {
		return nil, err
	}

	record, err := s.emails.SaveEmail(ctx, entity.EmailRecord{
		AnalysisID:    analysis.ID,
		Emails:        composition.Emails,
		BusinessInfo:  info,
		Opportunity:   composition.Opportunity,
		TargetPersona: persona,
		Tone:          tone,
	})
	metrics.ObserveStage(metrics.StagePersist, err)
	if err != nil {
		s.logger.Error("save emails failed", zap.String("analysis_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	s.logger.Info("emails stored",
		zap.String("email_id", record.ID),
		zap.String("analysis_id", id),
		zap.Int("drafts", len(record.Emails)),
	)
	return record, nil
}

// List returns every email batch generated for analysisID. An unknown id
// yields an empty list.
func (s *EmailService) List(ctx context.Context, analysisID string) ([]entity.EmailRecord, error) {
	records, err := s.emails.ListEmails(ctx, strings.TrimSpace(analysisID))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	if records == nil {
		records = []entity.EmailRecord{}
	}
	return records, nil
}
