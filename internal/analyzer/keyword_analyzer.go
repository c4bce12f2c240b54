package analyzer

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"triage-backend/internal/conditions"
)

const (
	followUpConditionLimit = 3
	followUpQuestionLimit  = 6
)

// Catalog is the read side of the condition catalog.
type Catalog interface {
	List(ctx context.Context) ([]conditions.Condition, error)
}

// KeywordAnalyzer scores catalog conditions by the share of their symptoms
// found in the text and tiers the result with RiskRules.
type KeywordAnalyzer struct {
	catalog Catalog
	matcher SymptomMatcher
	rules   *RiskRules
}

// NewKeywordAnalyzer wires an analyzer. A nil matcher or rules fall back to defaults.
func NewKeywordAnalyzer(catalog Catalog, matcher SymptomMatcher, rules *RiskRules) (*KeywordAnalyzer, error) {
	if catalog == nil {
		return nil, fmt.Errorf("analyzer: catalog is required")
	}
	if matcher == nil {
		matcher = KeywordMatcher{}
	}
	if rules == nil {
		compiled, err := NewRiskRules(DefaultRules)
		if err != nil {
			return nil, err
		}
		rules = compiled
	}
	return &KeywordAnalyzer{catalog: catalog, matcher: matcher, rules: rules}, nil
}

type scored struct {
	condition conditions.Condition
	matched   []string
	score     float64
}

// Analyze matches text against the catalog.
func (a *KeywordAnalyzer) Analyze(ctx context.Context, text string) (Analysis, error) {
	catalog, err := a.catalog.List(ctx)
	if err != nil {
		return Analysis{}, fmt.Errorf("load catalog: %w", err)
	}

	candidates := make([]scored, 0, len(catalog))
	for _, c := range catalog {
		if len(c.Symptoms) == 0 {
			continue
		}
		matched := a.matcher.Match(text, c.Symptoms)
		if len(matched) == 0 {
			continue
		}
		candidates = append(candidates, scored{
			condition: c,
			matched:   matched,
			score:     round2(float64(len(matched)) / float64(len(c.Symptoms))),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].condition.Name < candidates[j].condition.Name
	})

	allSymptoms := make([]string, 0)
	for _, c := range catalog {
		allSymptoms = append(allSymptoms, c.Symptoms...)
	}

	out := Analysis{
		DetectedSymptoms:    a.matcher.Match(text, allSymptoms),
		PotentialConditions: make(map[string]float64, len(candidates)),
		Conditions:          make([]string, 0, len(candidates)),
		FollowUpQuestions:   followUpQuestions(candidates),
		Details:             make(map[string]map[string]any, len(candidates)),
	}
	severities := make([]string, 0, len(candidates))
	for _, c := range candidates {
		name := c.condition.Name
		out.PotentialConditions[name] = c.score
		out.Conditions = append(out.Conditions, name)
		detail := map[string]any{
			"severity":         c.condition.Severity,
			"matched_symptoms": c.matched,
			"score":            c.score,
		}
		if rec := strings.TrimSpace(c.condition.Recommendations); rec != "" {
			detail["recommendations"] = rec
		}
		out.Details[name] = detail
		severities = append(severities, strings.ToLower(strings.TrimSpace(c.condition.Severity)))
	}

	env := RiskEnv{
		Severities:     severities,
		ConditionCount: len(candidates),
		SymptomCount:   len(out.DetectedSymptoms),
	}
	if len(candidates) > 0 {
		env.TopScore = candidates[0].score
		env.TopSeverity = severities[0]
	}
	level, err := a.rules.Evaluate(env)
	if err != nil {
		return Analysis{}, err
	}
	out.RiskLevel = level
	return out, nil
}

// followUpQuestions lists symptoms of the leading candidates that were not reported.
func followUpQuestions(candidates []scored) []string {
	seen := map[string]bool{}
	matched := map[string]bool{}
	for _, c := range candidates {
		for _, m := range c.matched {
			matched[m] = true
		}
	}
	out := []string{}
	for i, c := range candidates {
		if i >= followUpConditionLimit {
			break
		}
		for _, s := range c.condition.Symptoms {
			phrase := normalizeText(s)
			if phrase == "" || matched[phrase] || seen[phrase] {
				continue
			}
			seen[phrase] = true
			out = append(out, phrase)
		}
	}
	sort.Strings(out)
	if len(out) > followUpQuestionLimit {
		out = out[:followUpQuestionLimit]
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
