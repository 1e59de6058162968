package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/config"
	"github.com/moatezLita/salesGPT/internal/entity"
	"github.com/moatezLita/salesGPT/internal/llm"
	"github.com/moatezLita/salesGPT/internal/metrics"
)

// ComposeInput is everything the composer needs for one generation.
type ComposeInput struct {
	Analysis      entity.AnalysisResult
	BusinessInfo  *entity.BusinessInfo
	TargetPersona string
	Tone          string
}

// Composition is the composer's output. Opportunity is nil under the direct strategy.
type Composition struct {
	Emails      []entity.EmailDraft
	Opportunity entity.OpportunityAnalysis
}

// EmailComposer drafts outreach emails, optionally preceded by an opportunity
// analysis round trip.
type EmailComposer struct {
	llm      llm.Completer
	strategy string
	logger   *zap.Logger
}

// NewEmailComposer wires a composer. Unknown strategies fall back to two_stage.
func NewEmailComposer(completer llm.Completer, strategy string, logger *zap.Logger) *EmailComposer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strategy != config.StrategyDirect {
		strategy = config.StrategyTwoStage
	}
	return &EmailComposer{llm: completer, strategy: strategy, logger: logger.Named("composer")}
}

// Strategy reports which pipeline the composer runs.
func (c *EmailComposer) Strategy() string {
	return c.strategy
}

// Compose runs the configured pipeline. Failures wrap ErrEmailGenerationFailed.
func (c *EmailComposer) Compose(ctx context.Context, in ComposeInput) (*Composition, error) {
	out := &Composition{}

	if c.strategy == config.StrategyTwoStage {
		opportunity, err := c.assessOpportunity(ctx, in)
		metrics.ObserveStage(metrics.StageOpportunity, err)
		if err != nil {
			return nil, err
		}
		out.Opportunity = opportunity
	}

	drafts, err := c.draft(ctx, in, out.Opportunity)
	metrics.ObserveStage(metrics.StageDraft, err)
	if err != nil {
		return nil, err
	}
	out.Emails = drafts
	return out, nil
}

func (c *EmailComposer) assessOpportunity(ctx context.Context, in ComposeInput) (entity.OpportunityAnalysis, error) {
	prompt, err := buildOpportunityPrompt(in.Analysis, in.BusinessInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmailGenerationFailed, err)
	}

	reply, err := c.llm.Complete(ctx, llm.Request{
		System:      opportunitySystemPrompt,
		User:        prompt,
		Temperature: opportunityTemperature,
		MaxTokens:   opportunityMaxTokens,
	})
	if err != nil {
		c.logger.Warn("opportunity request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: opportunity analysis: %w", ErrEmailGenerationFailed, err)
	}

	opportunity := entity.OpportunityAnalysis{}
	if err := llm.DecodeObject(reply, &opportunity); err != nil {
		return nil, fmt.Errorf("%w: opportunity analysis: %w", ErrEmailGenerationFailed, err)
	}
	return opportunity, nil
}

func (c *EmailComposer) draft(ctx context.Context, in ComposeInput, opportunity entity.OpportunityAnalysis) ([]entity.EmailDraft, error) {
	prompt, err := buildEmailPrompt(in.Analysis, in.BusinessInfo, opportunity, in.TargetPersona, in.Tone)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmailGenerationFailed, err)
	}

	reply, err := c.llm.Complete(ctx, llm.Request{
		System:      emailSystemPrompt,
		User:        prompt,
		Temperature: emailTemperature,
		MaxTokens:   emailMaxTokens,
	})
	if err != nil {
		c.logger.Warn("draft request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrEmailGenerationFailed, err)
	}

	var parsed emailsTemplate
	if err := llm.DecodeObject(reply, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmailGenerationFailed, err)
	}

	drafts := make([]entity.EmailDraft, 0, EmailVariations)
	for _, d := range parsed.Emails {
		d.Subject = strings.TrimSpace(d.Subject)
		d.Body = strings.TrimSpace(d.Body)
		d.CallToAction = strings.TrimSpace(d.CallToAction)
		if d.Subject == "" || d.Body == "" || d.CallToAction == "" {
			continue
		}
		drafts = append(drafts, d)
		if len(drafts) == EmailVariations {
			break
		}
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: reply contained no complete email drafts", ErrEmailGenerationFailed)
	}
	return drafts, nil
}
