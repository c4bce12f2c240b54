package analyzer

import (
	"context"
	"strings"

	"github.com/spf13/cast"

	"triage-backend/internal/conditions"
	"triage-backend/internal/recommend"
)

// Analyzer turns free-text symptoms into a ranked, risk-tiered analysis.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Analysis, error)
}

// Analysis is the raw analyzer output returned to clients.
type Analysis struct {
	DetectedSymptoms    []string                       `json:"detected_symptoms"`
	PotentialConditions map[string]float64             `json:"potential_conditions"`
	Conditions          []string                       `json:"conditions"`
	RiskLevel           recommend.RiskLevel            `json:"risk_level"`
	FollowUpQuestions   []string                       `json:"follow_up_questions"`
	Details             map[string]map[string]any      `json:"details"`
	ConditionDetails    map[string]conditions.Metadata `json:"condition_details,omitempty"`
}

// ConditionSet projects the analysis onto the recommendation engine input.
// Details for conditions outside the ranked list are dropped.
func (a Analysis) ConditionSet() recommend.ConditionSet {
	set := recommend.ConditionSet{
		Conditions: append([]string{}, a.Conditions...),
		Details:    make(map[string]recommend.ConditionInfo, len(a.Conditions)),
	}
	for _, name := range a.Conditions {
		detail, ok := a.Details[name]
		if !ok {
			continue
		}
		set.Details[name] = recommend.ConditionInfo{
			Recommendations: strings.TrimSpace(cast.ToString(detail["recommendations"])),
		}
	}
	return set
}

// Risk returns the risk tier as engine input.
func (a Analysis) Risk() recommend.RiskAnalysis {
	return recommend.RiskAnalysis{RiskLevel: a.RiskLevel}
}
