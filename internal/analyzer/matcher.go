package analyzer

import (
	"sort"
	"strings"
	"unicode"
)

// SymptomMatcher finds which known symptom phrases occur in free text.
type SymptomMatcher interface {
	Match(text string, symptoms []string) []string
}

// KeywordMatcher matches whole-word phrases case-insensitively.
// Matches are returned in order of first appearance in the text.
type KeywordMatcher struct{}

func (KeywordMatcher) Match(text string, symptoms []string) []string {
	haystack := " " + normalizeText(text) + " "
	type hit struct {
		phrase string
		pos    int
	}
	hits := make([]hit, 0, len(symptoms))
	seen := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		phrase := normalizeText(s)
		if phrase == "" || seen[phrase] {
			continue
		}
		seen[phrase] = true
		if pos := strings.Index(haystack, " "+phrase+" "); pos >= 0 {
			hits = append(hits, hit{phrase: phrase, pos: pos})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].pos < hits[j].pos
	})
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.phrase)
	}
	return out
}

func normalizeText(text string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
