package resume

import "strings"

// Messages attached to the terminal no-signal results.
const (
	MessageNoKeywords = "No relevant keywords could be extracted from the job description. Please provide a more detailed job description."
	MessageNoMatches  = "No keywords from the job description were found in any of the uploaded resumes. Please check if the resumes are relevant to the job role or upload different resumes."
)

// ExperienceLevel is the coarse seniority label derived during enrichment.
type ExperienceLevel string

const (
	LevelEntry   ExperienceLevel = "Entry Level"
	LevelMid     ExperienceLevel = "Mid Level"
	LevelSenior  ExperienceLevel = "Senior"
	LevelUnknown ExperienceLevel = "Unknown"
)

// ParseExperienceLevel maps a free-form label to a known level, accepting a
// few spellings. Anything unrecognised becomes LevelUnknown.
func ParseExperienceLevel(label string) ExperienceLevel {
	normalized := strings.ToLower(strings.TrimSpace(label))
	normalized = strings.NewReplacer("-", " ", "_", " ").Replace(normalized)

	switch normalized {
	case "entry level", "entry", "junior":
		return LevelEntry
	case "mid level", "mid", "middle", "intermediate":
		return LevelMid
	case "senior", "lead", "principal":
		return LevelSenior
	default:
		return LevelUnknown
	}
}

// MatchResult describes which keywords of a set occur in one document.
// Matched and Unmatched partition the keyword set.
type MatchResult struct {
	Matched   []string `json:"matchedKeywords"`
	Unmatched []string `json:"unmatchedKeywords"`
	Ratio     float64  `json:"matchScore"`
	Total     int      `json:"totalKeywords"`
}

// Enrichment is the output of the enhanced keyword extraction: the
// authoritative keyword set plus signals derived from a sample document.
type Enrichment struct {
	Keywords        KeywordSet      `json:"keywords"`
	Confidence      float64         `json:"confidence"`
	ExtractedSkills []string        `json:"extractedSkills"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
}

// ScoredDocument is a document together with everything computed for it.
type ScoredDocument struct {
	Document

	Score           float64     `json:"similarityScore"`
	MatchedCount    int         `json:"matchedKeywords"`
	Unmatched       []string    `json:"unmatchedKeywords"`
	TotalKeywords   int         `json:"totalKeywords"`
	RoleMatch       float64     `json:"roleMatch"`
	DomainExpertise float64     `json:"domainExpertise"`
	Match           MatchResult `json:"keywordMatchDetails"`

	ExtractedSkills []string        `json:"extractedSkills,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty"`
	Confidence      *float64        `json:"analysisConfidence,omitempty"`
}

// Enriched reports whether enrichment signals were attached.
func (d *ScoredDocument) Enriched() bool {
	return d.Confidence != nil
}

// Outcome names the terminal state of one ranking call.
type Outcome string

const (
	OutcomeRanked     Outcome = "ranked"
	OutcomeNoKeywords Outcome = "no_keywords"
	OutcomeNoMatches  Outcome = "no_matches"
)

// RankingResult is either a non-empty ranking or an empty, explained
// no-signal result. Use the constructors to keep the two shapes apart.
type RankingResult struct {
	Outcome  Outcome          `json:"outcome"`
	Rankings []ScoredDocument `json:"rankings"`
	NoSignal bool             `json:"noKeywordsFound"`
	Message  *string          `json:"message"`
}

// Ranked builds the success shape.
func Ranked(docs []ScoredDocument) *RankingResult {
	return &RankingResult{
		Outcome:  OutcomeRanked,
		Rankings: docs,
	}
}

// NoKeywords builds the result for a description that yielded no keywords.
func NoKeywords() *RankingResult {
	return noSignal(OutcomeNoKeywords, MessageNoKeywords)
}

// NoMatches builds the result for documents that matched no keyword.
func NoMatches() *RankingResult {
	return noSignal(OutcomeNoMatches, MessageNoMatches)
}

func noSignal(outcome Outcome, message string) *RankingResult {
	return &RankingResult{
		Outcome:  outcome,
		Rankings: []ScoredDocument{},
		NoSignal: true,
		Message:  &message,
	}
}
