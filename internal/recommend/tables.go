package recommend

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TipCount is the number of health tips returned per bundle.
const TipCount = 2

// Fixed phrasing that tables files cannot override.
const (
	FallbackRecommendation = "consult a healthcare provider"
	UrgencyPrefix          = "Please take your symptoms seriously and seek medical attention. "
	CautionPrefix          = "Monitor your symptoms closely and consider consulting a healthcare provider. "
)

//go:embed defaults.yaml
var defaultTablesYAML []byte

// Tables is the immutable phrasing configuration of an Engine.
type Tables struct {
	Templates    map[RiskLevel][]Template
	Motivational []string
	Tips         []string
}

type tablesFile struct {
	Templates    map[string][]string `yaml:"templates"`
	Motivational []string            `yaml:"motivational"`
	Tips         []string            `yaml:"tips"`

	// Present only to reject them with a clear error.
	FallbackRecommendation *string `yaml:"fallback_recommendation"`
	UrgencyPrefix          *string `yaml:"urgency_prefix"`
	CautionPrefix          *string `yaml:"caution_prefix"`
}

// DefaultTables returns the built-in templates, messages and tips.
func DefaultTables() (Tables, error) {
	return LoadTables(bytes.NewReader(defaultTablesYAML))
}

// LoadTablesFile reads tables from a YAML file on disk.
func LoadTablesFile(path string) (Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tables{}, fmt.Errorf("open tables file: %w", err)
	}
	defer f.Close()
	return LoadTables(f)
}

// LoadTables decodes and validates YAML tables.
func LoadTables(r io.Reader) (Tables, error) {
	var raw tablesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return Tables{}, fmt.Errorf("decode tables: %w", err)
	}
	for key, v := range map[string]*string{
		"fallback_recommendation": raw.FallbackRecommendation,
		"urgency_prefix":          raw.UrgencyPrefix,
		"caution_prefix":          raw.CautionPrefix,
	} {
		if v != nil {
			return Tables{}, fmt.Errorf("%w: remove %s from the tables file", ErrFixedPhrasing, key)
		}
	}

	tables := Tables{
		Templates:    make(map[RiskLevel][]Template, len(raw.Templates)),
		Motivational: compact(raw.Motivational),
		Tips:         compact(raw.Tips),
	}
	for tierName, texts := range raw.Templates {
		tier, err := ParseRiskLevel(tierName)
		if err != nil {
			return Tables{}, fmt.Errorf("templates: %w", err)
		}
		for _, text := range texts {
			tpl, err := ParseTemplate(tier, text)
			if err != nil {
				return Tables{}, err
			}
			tables.Templates[tier] = append(tables.Templates[tier], tpl)
		}
	}
	if err := tables.Validate(); err != nil {
		return Tables{}, err
	}
	return tables, nil
}

// Validate checks the invariants an Engine relies on at request time.
func (t Tables) Validate() error {
	for _, tier := range RiskLevels {
		if len(t.Templates[tier]) == 0 {
			return fmt.Errorf("%w: %s", ErrMissingTierTemplates, tier)
		}
		for _, tpl := range t.Templates[tier] {
			if tpl.Tier != tier || len(tpl.segments) == 0 {
				return fmt.Errorf("%w: %s: template not built with ParseTemplate", ErrInvalidTemplate, tier)
			}
		}
	}
	if len(t.Motivational) == 0 {
		return ErrEmptyMotivationalPool
	}
	if len(dedupe(t.Tips)) < TipCount {
		return fmt.Errorf("%w: need at least %d distinct tips, have %d", ErrTipPoolTooSmall, TipCount, len(dedupe(t.Tips)))
	}
	return nil
}

func (t Tables) clone() Tables {
	out := Tables{
		Templates:    make(map[RiskLevel][]Template, len(t.Templates)),
		Motivational: append([]string(nil), t.Motivational...),
		Tips:         dedupe(t.Tips),
	}
	for tier, tpls := range t.Templates {
		out.Templates[tier] = append([]Template(nil), tpls...)
	}
	return out
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
