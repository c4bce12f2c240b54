package triage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"triage-backend/internal/analyzer"
	"triage-backend/internal/conditions"
	"triage-backend/internal/extract"
	"triage-backend/internal/recommend"
	"triage-backend/internal/shared/metrics"
	"triage-backend/internal/shared/telemetry"
)

const (
	kindInitial = "initial"
	kindFinal   = "final"
	kindUpload  = "upload"
)

// Recommender produces the recommendation bundle for an analysis.
type Recommender interface {
	Generate(set recommend.ConditionSet, risk recommend.RiskAnalysis) (recommend.Bundle, error)
}

// Catalog resolves descriptive condition records.
type Catalog interface {
	List(ctx context.Context) ([]conditions.Condition, error)
	Get(ctx context.Context, name string) (conditions.Condition, error)
	Metadata(ctx context.Context, name string) (conditions.Metadata, error)
}

// Result is one analysis together with its recommendations.
type Result struct {
	ID              string            `json:"analysisId"`
	Analysis        analyzer.Analysis `json:"analysis"`
	Recommendations recommend.Bundle  `json:"recommendations"`
}

// Service runs symptom text through the analyzer and the recommendation engine.
// Nothing is persisted between calls.
type Service struct {
	Analyzer analyzer.Analyzer
	Engine   Recommender
	Catalog  Catalog
	NewID    func() string
}

// NewService constructs a Service.
func NewService(a analyzer.Analyzer, engine Recommender, catalog Catalog) *Service {
	return &Service{Analyzer: a, Engine: engine, Catalog: catalog}
}

// InitialAnalysis analyzes a free-text symptom description.
func (s *Service) InitialAnalysis(ctx context.Context, text string) (Result, error) {
	return s.run(ctx, kindInitial, text, false)
}

// FinalAnalysis re-analyzes the initial symptoms together with follow-up
// answers and attaches catalog metadata for every candidate condition.
func (s *Service) FinalAnalysis(ctx context.Context, initial, followUp []string) (Result, error) {
	parts := make([]string, 0, len(initial)+len(followUp))
	for _, p := range append(append([]string{}, initial...), followUp...) {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return s.run(ctx, kindFinal, strings.Join(parts, " "), true)
}

// AnalyzeDocument extracts text from an uploaded symptom note and analyzes it.
func (s *Service) AnalyzeDocument(ctx context.Context, data []byte, mimeType, fileName string) (Result, error) {
	text, err := extract.ExtractTextFromBytes(ctx, data, mimeType, fileName)
	if err != nil {
		metrics.RecordAnalysisFailed(kindUpload)
		return Result{}, fmt.Errorf("extract %s: %w", fileName, err)
	}
	if strings.TrimSpace(text) == "" {
		metrics.RecordAnalysisFailed(kindUpload)
		return Result{}, ErrNoDocumentText
	}
	return s.run(ctx, kindUpload, text, false)
}

// Recommend calls the engine directly with analyzer-shaped input.
func (s *Service) Recommend(ctx context.Context, set recommend.ConditionSet, risk recommend.RiskAnalysis) (recommend.Bundle, error) {
	if s == nil || s.Engine == nil {
		return recommend.Bundle{}, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return recommend.Bundle{}, err
	}
	bundle, err := s.Engine.Generate(set, risk)
	if err != nil {
		return recommend.Bundle{}, err
	}
	metrics.RecordBundle(bundle.Generic())
	return bundle, nil
}

// Conditions lists the catalog.
func (s *Service) Conditions(ctx context.Context) ([]conditions.Condition, error) {
	if s == nil || s.Catalog == nil {
		return nil, ErrNotConfigured
	}
	return s.Catalog.List(ctx)
}

// Condition returns one catalog entry.
func (s *Service) Condition(ctx context.Context, name string) (conditions.Condition, error) {
	if s == nil || s.Catalog == nil {
		return conditions.Condition{}, ErrNotConfigured
	}
	return s.Catalog.Get(ctx, name)
}

func (s *Service) run(ctx context.Context, kind, text string, withMetadata bool) (Result, error) {
	if s == nil || s.Analyzer == nil || s.Engine == nil {
		return Result{}, ErrNotConfigured
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrEmptySymptoms
	}
	start := time.Now()

	analysis, err := s.Analyzer.Analyze(ctx, text)
	if err != nil {
		metrics.RecordAnalysisFailed(kind)
		return Result{}, fmt.Errorf("analyze symptoms: %w", err)
	}

	if withMetadata && s.Catalog != nil {
		analysis.ConditionDetails = make(map[string]conditions.Metadata, len(analysis.Conditions))
		for _, name := range analysis.Conditions {
			meta, err := s.Catalog.Metadata(ctx, name)
			if err != nil {
				metrics.RecordAnalysisFailed(kind)
				return Result{}, fmt.Errorf("condition metadata %s: %w", name, err)
			}
			analysis.ConditionDetails[name] = meta
		}
	}

	bundle, err := s.Recommend(ctx, analysis.ConditionSet(), analysis.Risk())
	if err != nil {
		metrics.RecordAnalysisFailed(kind)
		return Result{}, fmt.Errorf("generate recommendations: %w", err)
	}

	result := Result{
		ID:              s.newID(),
		Analysis:        analysis,
		Recommendations: bundle,
	}
	elapsed := time.Since(start)
	metrics.RecordAnalysis(kind, string(analysis.RiskLevel), elapsed)
	telemetry.Info("triage.analysis", map[string]any{
		"analysis_id":     result.ID,
		"kind":            kind,
		"risk_level":      analysis.RiskLevel,
		"condition_count": len(analysis.Conditions),
		"symptom_count":   len(analysis.DetectedSymptoms),
		"duration_ms":     float64(elapsed.Microseconds()) / 1000.0,
	})
	return result, nil
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
