package analyzer

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"

	"triage-backend/internal/recommend"
)

// Rule assigns Tier when the boolean expression When holds.
type Rule struct {
	Tier recommend.RiskLevel `yaml:"tier" json:"tier"`
	When string              `yaml:"when" json:"when"`
}

// DefaultRules are evaluated in order; the first match wins, otherwise low.
var DefaultRules = []Rule{
	{Tier: recommend.RiskHigh, When: `top_severity == "high" && top_score >= 0.5`},
	{Tier: recommend.RiskMedium, When: `top_severity in ["high", "moderate to high"] || top_score >= 0.6 || condition_count >= 3`},
}

// RiskEnv is the data a rule expression can reference.
type RiskEnv struct {
	TopScore       float64  `expr:"top_score"`
	TopSeverity    string   `expr:"top_severity"`
	Severities     []string `expr:"severities"`
	ConditionCount int      `expr:"condition_count"`
	SymptomCount   int      `expr:"symptom_count"`
}

type compiledRule struct {
	rule    Rule
	program *vm.Program
}

// RiskRules is a compiled, immutable rule list.
type RiskRules struct {
	rules []compiledRule
}

// NewRiskRules compiles rules so bad expressions fail at startup.
func NewRiskRules(rules []Rule) (*RiskRules, error) {
	out := &RiskRules{rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		if !r.Tier.Valid() {
			return nil, fmt.Errorf("risk rule %d: %w: %q", i, recommend.ErrInvalidRiskLevel, r.Tier)
		}
		program, err := expr.Compile(r.When, expr.Env(RiskEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("risk rule %d (%s): %w", i, r.Tier, err)
		}
		out.rules = append(out.rules, compiledRule{rule: r, program: program})
	}
	return out, nil
}

// Evaluate returns the tier of the first matching rule.
func (r *RiskRules) Evaluate(env RiskEnv) (recommend.RiskLevel, error) {
	if env.ConditionCount == 0 {
		return recommend.RiskLow, nil
	}
	for _, cr := range r.rules {
		result, err := expr.Run(cr.program, env)
		if err != nil {
			return "", fmt.Errorf("evaluate risk rule %q: %w", cr.rule.When, err)
		}
		if matched, ok := result.(bool); ok && matched {
			return cr.rule.Tier, nil
		}
	}
	return recommend.RiskLow, nil
}

// LoadRulesFile reads an ordered YAML list of {tier, when} rules.
func LoadRulesFile(path string) (*RiskRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read risk rules: %w", err)
	}
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("decode risk rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("risk rules file %s is empty", path)
	}
	return NewRiskRules(rules)
}
