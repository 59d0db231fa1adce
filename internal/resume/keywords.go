package resume

import (
	"encoding/json"
	"strings"
)

// KeywordSet is a deduplicated set of lowercase keywords that remembers the
// order in which keywords were first added. The zero value is empty and
// ready to use.
type KeywordSet struct {
	items []string
	index map[string]struct{}
}

// NewKeywordSet builds a set from the provided keywords.
func NewKeywordSet(keywords ...string) KeywordSet {
	var set KeywordSet
	set.Add(keywords...)
	return set
}

// Add inserts keywords, lowercased and trimmed. Blank keywords are ignored.
// It returns how many keywords were new.
func (s *KeywordSet) Add(keywords ...string) int {
	added := 0
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if s.index == nil {
			s.index = make(map[string]struct{})
		}
		if _, ok := s.index[keyword]; ok {
			continue
		}
		s.index[keyword] = struct{}{}
		s.items = append(s.items, keyword)
		added++
	}
	return added
}

func (s KeywordSet) Contains(keyword string) bool {
	_, ok := s.index[strings.ToLower(strings.TrimSpace(keyword))]
	return ok
}

func (s KeywordSet) Len() int {
	return len(s.items)
}

func (s KeywordSet) IsEmpty() bool {
	return len(s.items) == 0
}

// Items returns the keywords in first-seen order.
func (s KeywordSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s KeywordSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

func (s *KeywordSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewKeywordSet(items...)
	return nil
}
