// Package scoring computes the per-document sub-scores used by the ranking
// engine: keyword match statistics, role overlap and domain expertise.
package scoring

import (
	"strings"

	"github.com/spigell/resume-ranker/internal/resume"
	"github.com/spigell/resume-ranker/internal/vocabulary"
)

// Match partitions keywords into those occurring in text and the rest,
// keeping the set order. The ratio is 0 for an empty set.
func Match(text string, keywords resume.KeywordSet) resume.MatchResult {
	lower := strings.ToLower(text)
	items := keywords.Items()

	result := resume.MatchResult{
		Matched:   make([]string, 0, len(items)),
		Unmatched: make([]string, 0, len(items)),
		Total:     len(items),
	}

	for _, keyword := range items {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			result.Matched = append(result.Matched, keyword)
		} else {
			result.Unmatched = append(result.Unmatched, keyword)
		}
	}

	if result.Total > 0 {
		result.Ratio = float64(len(result.Matched)) / float64(result.Total)
	}

	return result
}

// RoleMatch returns the share of role keywords found in the document text.
// It is 0 without a role or for a role with no keywords.
func RoleMatch(doc *resume.Document, role *resume.RoleProfile) float64 {
	if doc == nil || role == nil || len(role.Keywords) == 0 {
		return 0
	}

	lower := strings.ToLower(doc.Text)
	matched := 0
	for _, keyword := range role.Keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			matched++
		}
	}

	return float64(matched) / float64(len(role.Keywords))
}

// Domain score increments per matching term.
const (
	IndustryStep  = 0.1
	SeniorityStep = 0.05
	EducationStep = 0.03
)

// DomainVocabulary groups the term lists the domain scorer looks for.
type DomainVocabulary struct {
	Industry  vocabulary.Vocabulary
	Seniority vocabulary.Vocabulary
	Education vocabulary.Vocabulary
}

// DefaultDomainVocabulary returns the built-in term lists.
func DefaultDomainVocabulary() DomainVocabulary {
	return DomainVocabulary{
		Industry:  vocabulary.Industry(),
		Seniority: vocabulary.Seniority(),
		Education: vocabulary.Education(),
	}
}

// DomainScorer estimates domain expertise from term co-occurrence.
type DomainScorer struct {
	vocab DomainVocabulary
}

func NewDomainScorer(vocab DomainVocabulary) *DomainScorer {
	return &DomainScorer{vocab: vocab}
}

// Expertise adds IndustryStep for every industry term present in both the
// document and the description, SeniorityStep for every seniority term and
// EducationStep for every education term in the document. The sum is
// capped at 1.
func (s *DomainScorer) Expertise(doc *resume.Document, description string) float64 {
	if doc == nil {
		return 0
	}

	text := strings.ToLower(doc.Text)
	job := strings.ToLower(description)

	industry := 0.0
	for _, term := range s.vocab.Industry.Within(text) {
		if strings.Contains(job, term) {
			industry += IndustryStep
		}
	}

	seniority := float64(s.vocab.Seniority.Count(text)) * SeniorityStep
	education := float64(s.vocab.Education.Count(text)) * EducationStep

	return min(1, industry+seniority+education)
}
