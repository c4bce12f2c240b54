package analyzer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"triage-backend/internal/recommend"
)

// ErrMalformedInput marks analyzer payloads whose fields have the wrong shape.
var ErrMalformedInput = errors.New("malformed analyzer output")

// Normalize adapts a loosely typed analyzer payload into engine input.
// It accepts "conditions" or "potential_conditions" (a ranked list or a
// name->score map) and "details" or "condition_details".
// The risk level is read and validated only when at least one condition is present.
func Normalize(raw map[string]any) (recommend.ConditionSet, recommend.RiskAnalysis, error) {
	names, err := conditionNames(firstPresent(raw, "conditions", "potential_conditions"))
	if err != nil {
		return recommend.ConditionSet{}, recommend.RiskAnalysis{}, err
	}

	set := recommend.ConditionSet{
		Conditions: names,
		Details:    map[string]recommend.ConditionInfo{},
	}
	if rawDetails := firstPresent(raw, "details", "condition_details"); rawDetails != nil {
		details, err := cast.ToStringMapE(rawDetails)
		if err != nil {
			return recommend.ConditionSet{}, recommend.RiskAnalysis{}, fmt.Errorf("%w: details: %v", ErrMalformedInput, err)
		}
		wanted := make(map[string]bool, len(names))
		for _, n := range names {
			wanted[n] = true
		}
		for name, v := range details {
			if !wanted[name] {
				continue
			}
			info := cast.ToStringMap(v)
			set.Details[name] = recommend.ConditionInfo{
				Recommendations: strings.TrimSpace(cast.ToString(info["recommendations"])),
			}
		}
	}

	var risk recommend.RiskAnalysis
	if len(names) == 0 {
		return set, risk, nil
	}
	rawLevel, ok := raw["risk_level"]
	if !ok || rawLevel == nil {
		return recommend.ConditionSet{}, recommend.RiskAnalysis{}, fmt.Errorf("%w: missing risk_level", recommend.ErrInvalidRiskLevel)
	}
	level, err := recommend.ParseRiskLevel(cast.ToString(rawLevel))
	if err != nil {
		return recommend.ConditionSet{}, recommend.RiskAnalysis{}, err
	}
	risk.RiskLevel = level
	return set, risk, nil
}

func firstPresent(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func conditionNames(v any) ([]string, error) {
	if v == nil {
		return []string{}, nil
	}
	if typed, ok := v.(map[string]float64); ok {
		scores := make(map[string]any, len(typed))
		for k, s := range typed {
			scores[k] = s
		}
		v = scores
	}
	switch v.(type) {
	case map[string]any, map[any]any:
		scores, err := cast.ToStringMapE(v)
		if err != nil {
			return nil, fmt.Errorf("%w: potential_conditions: %v", ErrMalformedInput, err)
		}
		type ranked struct {
			name  string
			score float64
		}
		items := make([]ranked, 0, len(scores))
		for name, s := range scores {
			items = append(items, ranked{name: name, score: cast.ToFloat64(s)})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].score != items[j].score {
				return items[i].score > items[j].score
			}
			return items[i].name < items[j].name
		})
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.name)
		}
		return out, nil
	}
	switch list := v.(type) {
	case []string:
	case []any:
		for i, item := range list {
			if _, ok := item.(string); !ok {
				return nil, fmt.Errorf("%w: conditions[%d]: expected string, got %T", ErrMalformedInput, i, item)
			}
		}
	default:
		return nil, fmt.Errorf("%w: conditions: unsupported type %T", ErrMalformedInput, v)
	}
	names, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("%w: conditions: %v", ErrMalformedInput, err)
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}
