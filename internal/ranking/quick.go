package ranking

import (
	"github.com/spigell/resume-ranker/internal/resume"
	"github.com/spigell/resume-ranker/internal/scoring"
)

// Weights of the single-document score.
const (
	QuickMatchWeight  = 0.6
	QuickRoleWeight   = 0.3
	QuickDomainWeight = 0.1
)

// QuickResult is the outcome of QuickScore.
type QuickResult struct {
	Score           float64 `json:"similarityScore"`
	MatchedKeywords int     `json:"matchedKeywords"`
	RoleMatch       float64 `json:"roleMatch"`
	DomainExpertise float64 `json:"domainExpertise"`
}

// QuickScore scores one document with basic extraction only: no
// enrichment, no boost and no gate.
func (e *Engine) QuickScore(doc *resume.Document, description string, role *resume.RoleProfile) QuickResult {
	set := e.extractor.Basic().Extract(description, role)

	text := ""
	if doc != nil {
		text = doc.Text
	}

	match := scoring.Match(text, set)
	roleMatch := scoring.RoleMatch(doc, role)
	domain := e.domain.Expertise(doc, description)

	return QuickResult{
		Score:           match.Ratio*QuickMatchWeight + roleMatch*QuickRoleWeight + domain*QuickDomainWeight,
		MatchedKeywords: len(match.Matched),
		RoleMatch:       roleMatch,
		DomainExpertise: domain,
	}
}
