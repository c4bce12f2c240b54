package recommend

import (
	"encoding/json"
	"strings"
)

// RiskLevel is the urgency tier assigned by the risk analyzer.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskLevels lists every valid tier, lowest first.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// Valid reports whether the level is one of the enumerated tiers.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// ParseRiskLevel normalizes case and whitespace and rejects unknown tiers.
func ParseRiskLevel(raw string) (RiskLevel, error) {
	level := RiskLevel(strings.ToLower(strings.TrimSpace(raw)))
	if !level.Valid() {
		return "", invalidRiskLevel(raw)
	}
	return level, nil
}

// ConditionInfo is the per-condition detail produced by the risk analyzer.
type ConditionInfo struct {
	Recommendations string `json:"recommendations,omitempty"`
}

// ConditionSet is the ranked list of candidate conditions. Conditions[0] is the main condition.
type ConditionSet struct {
	Conditions []string                 `json:"conditions"`
	Details    map[string]ConditionInfo `json:"details,omitempty"`
}

// Main returns the top-ranked condition, if any.
func (s ConditionSet) Main() (string, bool) {
	if len(s.Conditions) == 0 {
		return "", false
	}
	return s.Conditions[0], true
}

// RiskAnalysis carries the tier assigned to a ConditionSet.
type RiskAnalysis struct {
	RiskLevel RiskLevel `json:"risk_level"`
}

// Bundle is the response produced by Engine.Generate.
//
// Recommendations is only emitted when no condition matched; SpecificRecommendations
// and RiskLevel only when one did.
type Bundle struct {
	Recommendations         []string  `json:"recommendations,omitempty"`
	SpecificRecommendations []string  `json:"specific_recommendations,omitempty"`
	MotivationalMessage     string    `json:"motivational_message"`
	HealthTips              []string  `json:"health_tips"`
	RiskLevel               RiskLevel `json:"risk_level,omitempty"`
}

// Generic reports whether the bundle was built without a candidate condition.
func (b Bundle) Generic() bool {
	return b.RiskLevel == ""
}

type genericBundle struct {
	Recommendations     []string `json:"recommendations"`
	MotivationalMessage string   `json:"motivational_message"`
	HealthTips          []string `json:"health_tips"`
}

type specificBundle struct {
	SpecificRecommendations []string  `json:"specific_recommendations"`
	MotivationalMessage     string    `json:"motivational_message"`
	HealthTips              []string  `json:"health_tips"`
	RiskLevel               RiskLevel `json:"risk_level"`
}

// MarshalJSON keeps the two response shapes apart: an empty "recommendations"
// array for generic guidance, "specific_recommendations" plus "risk_level" otherwise.
func (b Bundle) MarshalJSON() ([]byte, error) {
	tips := b.HealthTips
	if tips == nil {
		tips = []string{}
	}
	if b.Generic() {
		recs := b.Recommendations
		if recs == nil {
			recs = []string{}
		}
		return json.Marshal(genericBundle{
			Recommendations:     recs,
			MotivationalMessage: b.MotivationalMessage,
			HealthTips:          tips,
		})
	}
	specific := b.SpecificRecommendations
	if specific == nil {
		specific = []string{}
	}
	return json.Marshal(specificBundle{
		SpecificRecommendations: specific,
		MotivationalMessage:     b.MotivationalMessage,
		HealthTips:              tips,
		RiskLevel:               b.RiskLevel,
	})
}
