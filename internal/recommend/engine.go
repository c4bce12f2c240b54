package recommend

import "strings"

// Engine turns a ranked ConditionSet and its risk tier into a Bundle.
// It is safe for concurrent use when its Source is.
type Engine struct {
	tables Tables
	src    Source
	tips   TipSelector
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource overrides the randomness source.
func WithSource(src Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.src = src
		}
	}
}

// WithTipSelector overrides the tip selection policy.
func WithTipSelector(sel TipSelector) Option {
	return func(e *Engine) {
		if sel != nil {
			e.tips = sel
		}
	}
}

// New validates tables and builds an Engine. Tables are copied.
func New(tables Tables, opts ...Option) (*Engine, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		tables: tables.clone(),
		src:    NewTimeSource(),
		tips:   UniformTips{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewDefault builds an Engine from the embedded tables.
func NewDefault(opts ...Option) (*Engine, error) {
	tables, err := DefaultTables()
	if err != nil {
		return nil, err
	}
	return New(tables, opts...)
}

// Generate builds the recommendation bundle. Only the top condition gets a
// specific recommendation. The risk tier is checked only when a condition is present.
func (e *Engine) Generate(set ConditionSet, risk RiskAnalysis) (Bundle, error) {
	main, ok := set.Main()
	if !ok {
		return Bundle{
			Recommendations:     []string{},
			MotivationalMessage: choose(e.src, e.tables.Motivational),
			HealthTips:          e.selectTips(""),
		}, nil
	}
	if !risk.RiskLevel.Valid() {
		return Bundle{}, invalidRiskLevel(string(risk.RiskLevel))
	}

	recommendation := FallbackRecommendation
	if info, ok := set.Details[main]; ok {
		if text := strings.TrimSpace(info.Recommendations); text != "" {
			recommendation = text
		}
	}

	templates := e.tables.Templates[risk.RiskLevel]
	tpl := templates[e.src.IntN(len(templates))]
	specific := tpl.Render(main, recommendation)
	message := e.motivationalMessage(risk.RiskLevel)

	return Bundle{
		SpecificRecommendations: []string{specific},
		MotivationalMessage:     message,
		HealthTips:              e.selectTips(main),
		RiskLevel:               risk.RiskLevel,
	}, nil
}

func (e *Engine) motivationalMessage(level RiskLevel) string {
	msg := choose(e.src, e.tables.Motivational)
	switch level {
	case RiskHigh:
		return UrgencyPrefix + msg
	case RiskMedium:
		return CautionPrefix + msg
	default:
		return msg
	}
}

func (e *Engine) selectTips(condition string) []string {
	return e.tips.Select(condition, e.tables.Tips, TipCount, e.src)
}

// Tables returns a copy of the engine's configuration.
func (e *Engine) Tables() Tables {
	return e.tables.clone()
}
