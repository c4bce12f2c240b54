package recommend

import (
	"fmt"
	"strings"
)

const (
	placeholderCondition      = "condition"
	placeholderRecommendation = "recommendation"
)

type segment struct {
	literal string
	field   string
}

// Template is a validated recommendation phrase for one risk tier.
type Template struct {
	Tier     RiskLevel
	Text     string
	segments []segment
}

// ParseTemplate validates that text carries exactly the {condition} and
// {recommendation} placeholders and nothing else in braces.
func ParseTemplate(tier RiskLevel, text string) (Template, error) {
	if !tier.Valid() {
		return Template{}, invalidRiskLevel(string(tier))
	}
	segments, err := splitPlaceholders(text)
	if err != nil {
		return Template{}, fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, tier, err)
	}
	seen := map[string]bool{}
	for _, s := range segments {
		if s.field == "" {
			continue
		}
		switch s.field {
		case placeholderCondition, placeholderRecommendation:
			seen[s.field] = true
		default:
			return Template{}, fmt.Errorf("%w: %s: unknown placeholder {%s} in %q", ErrInvalidTemplate, tier, s.field, text)
		}
	}
	for _, required := range []string{placeholderCondition, placeholderRecommendation} {
		if !seen[required] {
			return Template{}, fmt.Errorf("%w: %s: missing {%s} in %q", ErrInvalidTemplate, tier, required, text)
		}
	}
	return Template{Tier: tier, Text: text, segments: segments}, nil
}

// Render binds the placeholders.
func (t Template) Render(condition, recommendation string) string {
	var b strings.Builder
	for _, s := range t.segments {
		switch s.field {
		case "":
			b.WriteString(s.literal)
		case placeholderCondition:
			b.WriteString(condition)
		case placeholderRecommendation:
			b.WriteString(recommendation)
		}
	}
	return b.String()
}

func splitPlaceholders(text string) ([]segment, error) {
	var out []segment
	rest := text
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if strings.IndexByte(rest, '}') >= 0 {
				return nil, fmt.Errorf("unbalanced '}' in %q", text)
			}
			out = append(out, segment{literal: rest})
			break
		}
		if strings.IndexByte(rest[:open], '}') >= 0 {
			return nil, fmt.Errorf("unbalanced '}' in %q", text)
		}
		if open > 0 {
			out = append(out, segment{literal: rest[:open]})
		}
		closeIdx := strings.IndexByte(rest[open:], '}')
		if closeIdx < 0 {
			return nil, fmt.Errorf("unterminated placeholder in %q", text)
		}
		name := strings.TrimSpace(rest[open+1 : open+closeIdx])
		if name == "" {
			return nil, fmt.Errorf("empty placeholder in %q", text)
		}
		out = append(out, segment{field: name})
		rest = rest[open+closeIdx+1:]
	}
	return out, nil
}
