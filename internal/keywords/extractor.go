// Package keywords derives the keyword set a ranking call matches documents
// against.
package keywords

import (
	"regexp"
	"strings"

	"github.com/spigell/resume-ranker/internal/resume"
	"github.com/spigell/resume-ranker/internal/vocabulary"
)

// minTokenLength is exclusive: tokens must be longer than this to count.
const minTokenLength = 3

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Extractor is the basic keyword extractor. It favours recall: every
// sufficiently long word of the description becomes a keyword.
type Extractor struct {
	vocab vocabulary.Vocabulary
}

func NewExtractor(vocab vocabulary.Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract seeds the set with the role keywords, adds every vocabulary term
// found in the description and then every description token longer than
// three characters once stripped of non-word characters.
func (e *Extractor) Extract(description string, role *resume.RoleProfile) resume.KeywordSet {
	var set resume.KeywordSet
	set.Add(role.KeywordList()...)

	lower := strings.ToLower(description)
	set.Add(e.vocab.Within(lower)...)
	set.Add(tokens(lower)...)

	return set
}

func tokens(lower string) []string {
	fields := strings.Fields(lower)
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		cleaned := nonWord.ReplaceAllString(field, "")
		if len(cleaned) > minTokenLength {
			out = append(out, cleaned)
		}
	}
	return out
}
