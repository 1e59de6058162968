package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/entity"
	"github.com/moatezLita/salesGPT/internal/llm"
	"github.com/moatezLita/salesGPT/internal/metrics"
)

// BusinessAnalyzer asks the language model for a structured company analysis.
type BusinessAnalyzer struct {
	llm    llm.Completer
	logger *zap.Logger
}

// NewBusinessAnalyzer wires an analyzer around completer.
func NewBusinessAnalyzer(completer llm.Completer, logger *zap.Logger) *BusinessAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BusinessAnalyzer{llm: completer, logger: logger.Named("analyzer")}
}

// Analyze returns the model's analysis of site. Any transport failure or a
// reply that is not a JSON object yields ErrAnalysisFailed.
func (a *BusinessAnalyzer) Analyze(ctx context.Context, site entity.ScrapedSite, customNotes string) (result entity.AnalysisResult, err error) {
	defer func() { metrics.ObserveStage(metrics.StageAnalyze, err) }()

	prompt, err := buildAnalysisPrompt(site, customNotes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	reply, err := a.llm.Complete(ctx, llm.Request{
		System:      analysisSystemPrompt,
		User:        prompt,
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		a.logger.Warn("analysis request failed", zap.String("final_url", site.FinalURL), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	result = entity.AnalysisResult{}
	if err := llm.DecodeObject(reply, &result); err != nil {
		a.logger.Warn("analysis reply is not JSON", zap.String("final_url", site.FinalURL), zap.Int("reply_length", len(reply)))
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	return result, nil
}
