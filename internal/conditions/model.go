package conditions

import (
	"strings"
	"time"
)

// Condition is a catalog entry: descriptive metadata plus the symptom phrases
// and default guidance used by the analyzer.
type Condition struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CommonCauses    []string  `json:"common_causes"`
	RiskFactors     []string  `json:"risk_factors"`
	Severity        string    `json:"severity"`
	Symptoms        []string  `json:"symptoms"`
	Recommendations string    `json:"recommendations,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Metadata is the descriptive record attached to a final analysis.
// The zero value is returned for unknown conditions.
type Metadata struct {
	Description  string   `json:"description,omitempty"`
	CommonCauses []string `json:"common_causes,omitempty"`
	RiskFactors  []string `json:"risk_factors,omitempty"`
	Severity     string   `json:"severity,omitempty"`
}

// Metadata projects the descriptive fields.
func (c Condition) Metadata() Metadata {
	return Metadata{
		Description:  c.Description,
		CommonCauses: append([]string(nil), c.CommonCauses...),
		RiskFactors:  append([]string(nil), c.RiskFactors...),
		Severity:     c.Severity,
	}
}

// NormalizeName lowercases and collapses whitespace so lookups are stable.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
