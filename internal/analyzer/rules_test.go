package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triage-backend/internal/recommend"
)

func TestRiskRulesDefaults(t *testing.T) {
	rules, err := NewRiskRules(DefaultRules)
	require.NoError(t, err)

	cases := []struct {
		name string
		env  RiskEnv
		want recommend.RiskLevel
	}{
		{"no conditions", RiskEnv{}, recommend.RiskLow},
		{"high severity strong match", RiskEnv{TopScore: 0.5, TopSeverity: "high", ConditionCount: 1}, recommend.RiskHigh},
		{"high severity weak match", RiskEnv{TopScore: 0.2, TopSeverity: "high", ConditionCount: 1}, recommend.RiskMedium},
		{"moderate strong match", RiskEnv{TopScore: 0.75, TopSeverity: "moderate", ConditionCount: 1}, recommend.RiskMedium},
		{"many candidates", RiskEnv{TopScore: 0.1, TopSeverity: "moderate", ConditionCount: 3}, recommend.RiskMedium},
		{"moderate weak match", RiskEnv{TopScore: 0.3, TopSeverity: "moderate", ConditionCount: 1}, recommend.RiskLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rules.Evaluate(tc.env)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewRiskRulesRejectsBadInput(t *testing.T) {
	_, err := NewRiskRules([]Rule{{Tier: "critical", When: "true"}})
	assert.ErrorIs(t, err, recommend.ErrInvalidRiskLevel)

	_, err = NewRiskRules([]Rule{{Tier: recommend.RiskHigh, When: "top_score +"}})
	assert.Error(t, err)

	_, err = NewRiskRules([]Rule{{Tier: recommend.RiskHigh, When: "top_score"}})
	assert.Error(t, err)
}

func TestRiskRulesSeverityList(t *testing.T) {
	rules, err := NewRiskRules([]Rule{{Tier: recommend.RiskHigh, When: `"high" in severities && symptom_count >= 2`}})
	require.NoError(t, err)

	got, err := rules.Evaluate(RiskEnv{Severities: []string{"moderate", "high"}, ConditionCount: 2, SymptomCount: 2})
	require.NoError(t, err)
	assert.Equal(t, recommend.RiskHigh, got)
}

func TestLoadRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	body := "- tier: medium\n  when: symptom_count >= 1\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	rules, err := LoadRulesFile(path)
	require.NoError(t, err)
	got, err := rules.Evaluate(RiskEnv{ConditionCount: 1, SymptomCount: 1})
	require.NoError(t, err)
	assert.Equal(t, recommend.RiskMedium, got)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("[]"), 0o600))
	_, err = LoadRulesFile(empty)
	assert.Error(t, err)
}
