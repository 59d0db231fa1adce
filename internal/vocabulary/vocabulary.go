// Package vocabulary holds the fixed term lists the extractors and scorers
// match against. A Vocabulary is a value: it is built once, never mutated,
// and handed to the component that needs it.
package vocabulary

import "strings"

// Vocabulary is an ordered, deduplicated list of lowercase terms.
type Vocabulary struct {
	terms []string
}

// New builds a vocabulary from the provided terms. Terms are trimmed and
// lowercased; empty terms and duplicates are dropped, first occurrence wins.
func New(terms ...string) Vocabulary {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return Vocabulary{terms: out}
}

// Terms returns a copy of the vocabulary terms in their original order.
func (v Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

func (v Vocabulary) Len() int {
	return len(v.terms)
}

// Within returns the terms that occur as substrings of text, compared
// case-insensitively, in vocabulary order.
func (v Vocabulary) Within(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, term := range v.terms {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

// Count returns how many terms occur in text.
func (v Vocabulary) Count(text string) int {
	return len(v.Within(text))
}

// Any reports whether at least one term occurs in text.
func (v Vocabulary) Any(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range v.terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// LevelGroup binds an experience level label to the indicators that select it.
type LevelGroup struct {
	Level      string
	Indicators Vocabulary
}

// Levels is an ordered list of indicator groups. The first group with a
// matching indicator wins.
type Levels []LevelGroup

// Classify returns the label of the first group whose indicators occur in
// text, or fallback when none do.
func (l Levels) Classify(text, fallback string) string {
	for _, group := range l {
		if group.Indicators.Any(text) {
			return group.Level
		}
	}
	return fallback
}
