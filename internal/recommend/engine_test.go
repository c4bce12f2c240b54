package recommend

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSource struct {
	draws []int
	calls []int
}

func (s *scriptedSource) IntN(n int) int {
	s.calls = append(s.calls, n)
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v % n
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	engine, err := NewDefault(opts...)
	require.NoError(t, err)
	return engine
}

func TestGenerateTotality(t *testing.T) {
	engine := newTestEngine(t, WithSource(NewSeededSource(7)))
	sets := map[string]ConditionSet{
		"empty":     {},
		"condition": {Conditions: []string{"flu"}},
	}
	for _, level := range RiskLevels {
		for name, set := range sets {
			t.Run(string(level)+"_"+name, func(t *testing.T) {
				bundle, err := engine.Generate(set, RiskAnalysis{RiskLevel: level})
				require.NoError(t, err)
				assert.NotEmpty(t, bundle.MotivationalMessage)
				assert.Len(t, bundle.HealthTips, TipCount)
			})
		}
	}
}

func TestGenerateTipsAreDistinctAndFromPool(t *testing.T) {
	engine := newTestEngine(t, WithSource(NewSeededSource(1)))
	pool := engine.Tables().Tips
	for i := 0; i < 200; i++ {
		bundle, err := engine.Generate(ConditionSet{Conditions: []string{"flu"}}, RiskAnalysis{RiskLevel: RiskLow})
		require.NoError(t, err)
		require.Len(t, bundle.HealthTips, 2)
		assert.NotEqual(t, bundle.HealthTips[0], bundle.HealthTips[1])
		for _, tip := range bundle.HealthTips {
			assert.Contains(t, pool, tip)
		}
	}
}

func TestGenerateNoConditions(t *testing.T) {
	engine := newTestEngine(t, WithSource(NewSeededSource(3)))

	bundle, err := engine.Generate(ConditionSet{Conditions: []string{}}, RiskAnalysis{RiskLevel: RiskHigh})
	require.NoError(t, err)

	assert.Empty(t, bundle.Recommendations)
	assert.Empty(t, bundle.SpecificRecommendations)
	assert.Contains(t, engine.Tables().Motivational, bundle.MotivationalMessage)
	assert.Empty(t, bundle.RiskLevel)

	raw, err := json.Marshal(bundle)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, []any{}, payload["recommendations"])
	assert.NotContains(t, payload, "risk_level")
	assert.NotContains(t, payload, "specific_recommendations")
	assert.Len(t, payload["health_tips"], 2)
}

func TestGenerateNoConditionsIgnoresRiskTier(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Generate(ConditionSet{}, RiskAnalysis{RiskLevel: "severe"})
	require.NoError(t, err)
}

func TestGenerateFallbackRecommendation(t *testing.T) {
	engine := newTestEngine(t, WithSource(NewSeededSource(11)))

	bundle, err := engine.Generate(
		ConditionSet{Conditions: []string{"flu"}, Details: map[string]ConditionInfo{}},
		RiskAnalysis{RiskLevel: RiskLow},
	)
	require.NoError(t, err)
	require.Len(t, bundle.SpecificRecommendations, 1)
	rec := bundle.SpecificRecommendations[0]
	assert.Contains(t, rec, "flu")
	assert.Contains(t, rec, "consult a healthcare provider")
	assert.Contains(t, engine.Tables().Motivational, bundle.MotivationalMessage)
	assert.Equal(t, RiskLow, bundle.RiskLevel)
}

func TestGenerateFallbackWhenDetailsLackRecommendations(t *testing.T) {
	engine := newTestEngine(t)
	bundle, err := engine.Generate(
		ConditionSet{Conditions: []string{"anxiety"}, Details: map[string]ConditionInfo{"anxiety": {}}},
		RiskAnalysis{RiskLevel: RiskMedium},
	)
	require.NoError(t, err)
	assert.Contains(t, bundle.SpecificRecommendations[0], "consult a healthcare provider")
}

func TestGenerateUsesConditionDetails(t *testing.T) {
	engine := newTestEngine(t, WithSource(NewSeededSource(5)))

	bundle, err := engine.Generate(
		ConditionSet{
			Conditions: []string{"diabetes"},
			Details:    map[string]ConditionInfo{"diabetes": {Recommendations: "see an endocrinologist"}},
		},
		RiskAnalysis{RiskLevel: RiskHigh},
	)
	require.NoError(t, err)
	rec := bundle.SpecificRecommendations[0]
	assert.Contains(t, rec, "diabetes")
	assert.Contains(t, rec, "see an endocrinologist")
	assert.True(t, strings.HasPrefix(bundle.MotivationalMessage, UrgencyPrefix))
	assert.Equal(t, RiskHigh, bundle.RiskLevel)
}

func TestGenerateOnlyTopCondition(t *testing.T) {
	engine := newTestEngine(t)
	bundle, err := engine.Generate(
		ConditionSet{Conditions: []string{"flu", "anxiety", "diabetes"}},
		RiskAnalysis{RiskLevel: RiskMedium},
	)
	require.NoError(t, err)
	require.Len(t, bundle.SpecificRecommendations, 1)
	assert.Contains(t, bundle.SpecificRecommendations[0], "flu")
	assert.NotContains(t, bundle.SpecificRecommendations[0], "anxiety")
}

func TestGenerateMotivationalPrefixPolicy(t *testing.T) {
	engine := newTestEngine(t, WithSource(NewSeededSource(9)))
	tables := engine.Tables()
	set := ConditionSet{Conditions: []string{"flu"}}

	for i := 0; i < 20; i++ {
		high, err := engine.Generate(set, RiskAnalysis{RiskLevel: RiskHigh})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(high.MotivationalMessage, UrgencyPrefix))
		assert.Contains(t, tables.Motivational, strings.TrimPrefix(high.MotivationalMessage, UrgencyPrefix))

		medium, err := engine.Generate(set, RiskAnalysis{RiskLevel: RiskMedium})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(medium.MotivationalMessage, CautionPrefix))
		assert.Contains(t, tables.Motivational, strings.TrimPrefix(medium.MotivationalMessage, CautionPrefix))

		low, err := engine.Generate(set, RiskAnalysis{RiskLevel: RiskLow})
		require.NoError(t, err)
		assert.Contains(t, tables.Motivational, low.MotivationalMessage)
	}
}

func TestGenerateRejectsUnknownTier(t *testing.T) {
	engine := newTestEngine(t)
	for _, level := range []RiskLevel{"", "critical", "HIGH"} {
		_, err := engine.Generate(ConditionSet{Conditions: []string{"flu"}}, RiskAnalysis{RiskLevel: level})
		assert.ErrorIs(t, err, ErrInvalidRiskLevel, "level %q", level)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	set := ConditionSet{
		Conditions: []string{"diabetes", "flu"},
		Details:    map[string]ConditionInfo{"diabetes": {Recommendations: "see an endocrinologist"}},
	}
	risk := RiskAnalysis{RiskLevel: RiskMedium}

	first := newTestEngine(t, WithSource(NewSeededSource(42)))
	second := newTestEngine(t, WithSource(NewSeededSource(42)))
	for i := 0; i < 10; i++ {
		a, err := first.Generate(set, risk)
		require.NoError(t, err)
		b, err := second.Generate(set, risk)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestGenerateUnseededVariesOnlyInWording(t *testing.T) {
	engine := newTestEngine(t)
	set := ConditionSet{Conditions: []string{"flu"}}
	for i := 0; i < 50; i++ {
		bundle, err := engine.Generate(set, RiskAnalysis{RiskLevel: RiskLow})
		require.NoError(t, err)
		assert.Equal(t, RiskLow, bundle.RiskLevel)
		assert.Contains(t, bundle.SpecificRecommendations[0], "flu")
	}
}

func TestGenerateDrawOrder(t *testing.T) {
	src := &scriptedSource{draws: []int{2, 4, 0, 0}}
	engine := newTestEngine(t, WithSource(src))
	tables := engine.Tables()

	bundle, err := engine.Generate(ConditionSet{Conditions: []string{"flu"}}, RiskAnalysis{RiskLevel: RiskLow})
	require.NoError(t, err)

	assert.Equal(t, "It appears you might have flu. consult a healthcare provider", bundle.SpecificRecommendations[0])
	assert.Equal(t, tables.Motivational[4], bundle.MotivationalMessage)
	assert.Equal(t, []string{tables.Tips[0], tables.Tips[1]}, bundle.HealthTips)
	assert.Equal(t, []int{3, 5, 5, 4}, src.calls)
}

type fixedTips struct {
	got string
}

func (f *fixedTips) Select(condition string, pool []string, k int, src Source) []string {
	f.got = condition
	return pool[:k]
}

func TestGeneratePassesMainConditionToTipSelector(t *testing.T) {
	sel := &fixedTips{}
	engine := newTestEngine(t, WithTipSelector(sel))
	_, err := engine.Generate(ConditionSet{Conditions: []string{"anxiety", "flu"}}, RiskAnalysis{RiskLevel: RiskLow})
	require.NoError(t, err)
	assert.Equal(t, "anxiety", sel.got)
}

func TestEngineConcurrentUse(t *testing.T) {
	engine := newTestEngine(t, WithSource(NewLockedSource(99)))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				bundle, err := engine.Generate(ConditionSet{Conditions: []string{"flu"}}, RiskAnalysis{RiskLevel: RiskHigh})
				if err != nil || len(bundle.HealthTips) != 2 {
					t.Errorf("unexpected bundle: %+v err=%v", bundle, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestBundleJSONSpecificShape(t *testing.T) {
	bundle := Bundle{
		SpecificRecommendations: []string{"Your symptoms suggest flu. rest"},
		MotivationalMessage:     "Stay positive and focus on your recovery.",
		HealthTips:              []string{"a", "b"},
		RiskLevel:               RiskLow,
	}
	raw, err := json.Marshal(bundle)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"specific_recommendations": ["Your symptoms suggest flu. rest"],
		"motivational_message": "Stay positive and focus on your recovery.",
		"health_tips": ["a", "b"],
		"risk_level": "low"
	}`, string(raw))
}
