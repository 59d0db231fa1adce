package ranking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-ranker/internal/enrichment"
	"github.com/spigell/resume-ranker/internal/enrichment/local"
	"github.com/spigell/resume-ranker/internal/keywords"
	"github.com/spigell/resume-ranker/internal/resume"
)

func textDoc(id, text string) resume.Document {
	return resume.Document{ID: id, Name: id + ".txt", Text: text, Kind: resume.KindText}
}

type stubStrategy struct {
	mu         sync.Mutex
	enrichment *resume.Enrichment
	err        error
	samples    []string
}

func (s *stubStrategy) Name() string    { return "stub" }
func (s *stubStrategy) Available() bool { return true }

func (s *stubStrategy) Enrich(_ context.Context, _ string, _ *resume.RoleProfile, sample string) (*resume.Enrichment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, sample)
	if s.err != nil {
		return nil, s.err
	}
	copied := *s.enrichment
	return &copied, nil
}

func engineWith(strategy *stubStrategy, opts Options) *Engine {
	if strategy != nil {
		opts.Extractor = keywords.NewEnhancedExtractor(keywords.Options{Strategy: strategy})
	}
	return NewEngine(opts)
}

func TestRankEmptyDescriptionYieldsNoKeywords(t *testing.T) {
	result, err := NewEngine(Options{}).Rank(context.Background(),
		[]resume.Document{textDoc("a", "Anything at all, python included")}, "", nil)
	require.NoError(t, err)

	assert.Equal(t, resume.OutcomeNoKeywords, result.Outcome)
	assert.True(t, result.NoSignal)
	assert.Empty(t, result.Rankings)
	require.NotNil(t, result.Message)
	assert.Equal(t, resume.MessageNoKeywords, *result.Message)
}

func TestRankUnrelatedDocumentYieldsNoMatches(t *testing.T) {
	description := "We need a React developer with TypeScript and Git experience"
	engine := NewEngine(Options{})

	result, err := engine.Rank(context.Background(),
		[]resume.Document{textDoc("chef", "I cook pasta, bake bread and run a small kitchen")}, description, nil)
	require.NoError(t, err)

	assert.Equal(t, resume.OutcomeNoMatches, result.Outcome)
	assert.True(t, result.NoSignal)
	assert.Empty(t, result.Rankings)
	require.NotNil(t, result.Message)
	assert.Equal(t, resume.MessageNoMatches, *result.Message)
}

func TestRankLongDescriptionWordsCountAsKeywords(t *testing.T) {
	description := "We need a React developer with TypeScript and Git experience"
	engine := NewEngine(Options{})

	// every description word longer than three characters is a keyword, so
	// "with" and "experience" match even though no technology does
	result, err := engine.Rank(context.Background(),
		[]resume.Document{textDoc("chef", "I am a chef with no programming experience")}, description, nil)
	require.NoError(t, err)
	require.Equal(t, resume.OutcomeRanked, result.Outcome)

	match := result.Rankings[0].Match
	for _, k := range []string{"react", "typescript", "git"} {
		assert.Contains(t, match.Unmatched, k)
	}
	assert.ElementsMatch(t, []string{"with", "experience"}, match.Matched)
}

func TestRankSingleMatchingDocumentWithRole(t *testing.T) {
	role := &resume.RoleProfile{ID: "ds", Name: "DS", Keywords: []string{"python", "pandas"}}
	engine := NewEngine(Options{})

	result, err := engine.Rank(context.Background(),
		[]resume.Document{textDoc("a", "I have 5 years experience with Python and pandas for data analysis")},
		"Python data scientist with pandas and scikit-learn", role)
	require.NoError(t, err)

	require.Equal(t, resume.OutcomeRanked, result.Outcome)
	assert.False(t, result.NoSignal)
	assert.Nil(t, result.Message)
	require.Len(t, result.Rankings, 1)

	doc := result.Rankings[0]
	assert.Contains(t, doc.Match.Matched, "python")
	assert.Contains(t, doc.Match.Matched, "pandas")
	assert.Greater(t, doc.Score, 0.0)
	assert.Equal(t, 1.0, doc.RoleMatch)
	assert.Equal(t, len(doc.Match.Matched), doc.MatchedCount)
	assert.Equal(t, doc.Match.Total, doc.TotalKeywords)

	// the basic path still attaches its signals, without a boost
	require.NotNil(t, doc.Confidence)
	assert.Equal(t, keywords.BasicConfidence, *doc.Confidence)
	expected := doc.Match.Ratio*MatchWeight + doc.RoleMatch*RoleWeight + doc.DomainExpertise*DomainWeight
	assert.InDelta(t, expected, doc.Score, 1e-9)
}

func TestRankTruncatesToTopFiveInScoreOrder(t *testing.T) {
	description := "python pandas numpy docker kubernetes terraform"
	docs := []resume.Document{
		textDoc("1", "python"),
		textDoc("2", "python pandas numpy docker kubernetes terraform"),
		textDoc("3", "python pandas"),
		textDoc("4", "python pandas numpy docker"),
		textDoc("5", "python pandas numpy"),
		textDoc("6", "docker"),
		textDoc("7", "python pandas numpy docker kubernetes"),
	}

	result, err := NewEngine(Options{}).Rank(context.Background(), docs, description, nil)
	require.NoError(t, err)
	require.Equal(t, resume.OutcomeRanked, result.Outcome)
	require.Len(t, result.Rankings, DefaultLimit)

	ids := make([]string, 0, len(result.Rankings))
	for i, doc := range result.Rankings {
		ids = append(ids, doc.ID)
		if i > 0 {
			assert.GreaterOrEqual(t, result.Rankings[i-1].Score, doc.Score)
		}
	}
	assert.Equal(t, []string{"2", "7", "4", "5", "3"}, ids)
}

func TestRankHonoursConfiguredLimit(t *testing.T) {
	docs := []resume.Document{textDoc("1", "golang"), textDoc("2", "golang"), textDoc("3", "golang")}

	result, err := NewEngine(Options{Limit: 2}).Rank(context.Background(), docs, "golang", nil)
	require.NoError(t, err)
	assert.Len(t, result.Rankings, 2)
}

func TestRankTruncatesFullListNotOnlyMatchingDocuments(t *testing.T) {
	docs := []resume.Document{
		textDoc("match", "golang"),
		textDoc("none-1", "baking"),
		textDoc("none-2", "gardening"),
	}

	result, err := NewEngine(Options{}).Rank(context.Background(), docs, "golang", nil)
	require.NoError(t, err)

	require.Len(t, result.Rankings, 3)
	assert.Equal(t, "match", result.Rankings[0].ID)
	assert.Zero(t, result.Rankings[2].MatchedCount)
}

func TestRankKeepsInputOrderForTies(t *testing.T) {
	docs := []resume.Document{
		textDoc("first", "golang"),
		textDoc("second", "golang"),
		textDoc("third", "golang"),
	}

	result, err := NewEngine(Options{Parallelism: 3}).Rank(context.Background(), docs, "golang", nil)
	require.NoError(t, err)

	ids := []string{result.Rankings[0].ID, result.Rankings[1].ID, result.Rankings[2].ID}
	assert.Equal(t, []string{"first", "second", "third"}, ids)
}

func TestRankIsIdempotent(t *testing.T) {
	strategy := &stubStrategy{enrichment: &resume.Enrichment{
		Keywords:        resume.NewKeywordSet("golang", "docker", "kafka"),
		Confidence:      0.9,
		ExtractedSkills: []string{"golang"},
		ExperienceLevel: resume.LevelSenior,
	}}
	engine := engineWith(strategy, Options{Parallelism: 4})

	docs := make([]resume.Document, 0, 12)
	for i := range 12 {
		text := "golang"
		if i%2 == 0 {
			text += " docker"
		}
		if i%3 == 0 {
			text += " kafka senior phd"
		}
		docs = append(docs, textDoc(fmt.Sprintf("doc-%02d", i), text))
	}

	first, err := engine.Rank(context.Background(), docs, "golang docker kafka", nil)
	require.NoError(t, err)
	second, err := engine.Rank(context.Background(), docs, "golang docker kafka", nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRankAppliesConfidenceBoost(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		expected   float64
	}{
		{name: "boosted", confidence: 0.9, expected: 0.5 * BoostFactor},
		{name: "threshold is exclusive", confidence: 0.8, expected: 0.5},
		{name: "low confidence", confidence: 0.3, expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := &stubStrategy{enrichment: &resume.Enrichment{
				Keywords:   resume.NewKeywordSet("golang"),
				Confidence: tt.confidence,
			}}

			result, err := engineWith(strategy, Options{}).Rank(context.Background(),
				[]resume.Document{textDoc("a", "golang")}, "golang", nil)
			require.NoError(t, err)

			require.Len(t, result.Rankings, 1)
			assert.InDelta(t, tt.expected, result.Rankings[0].Score, 1e-9)
		})
	}
}

func TestRankBoostIsCapped(t *testing.T) {
	strategy := &stubStrategy{enrichment: &resume.Enrichment{
		Keywords:   resume.NewKeywordSet("python", "pandas"),
		Confidence: 0.95,
	}}
	role := &resume.RoleProfile{ID: "r", Name: "r", Keywords: []string{"python", "pandas"}}

	// 0.5 + 0.3 + 0.14 before the boost, above 1 after it
	text := "python pandas senior lead manager director vp cto architect principal expert specialist consultant phd master bachelor degree certification"
	result, err := engineWith(strategy, Options{}).Rank(context.Background(),
		[]resume.Document{textDoc("a", text)}, "python pandas", role)
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.Rankings[0].Score)
}

func TestRankBroadcastsFirstDocumentEnrichment(t *testing.T) {
	strategy := &stubStrategy{enrichment: &resume.Enrichment{
		Keywords:        resume.NewKeywordSet("golang"),
		Confidence:      0.6,
		ExtractedSkills: []string{"golang", "docker"},
		ExperienceLevel: resume.LevelMid,
	}}

	docs := []resume.Document{textDoc("a", "golang first"), textDoc("b", "golang second")}
	result, err := engineWith(strategy, Options{}).Rank(context.Background(), docs, "golang", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"golang first"}, strategy.samples)
	require.Len(t, result.Rankings, 2)
	for _, doc := range result.Rankings {
		require.True(t, doc.Enriched())
		assert.Equal(t, 0.6, *doc.Confidence)
		assert.Equal(t, []string{"golang", "docker"}, doc.ExtractedSkills)
		assert.Equal(t, resume.LevelMid, doc.ExperienceLevel)
	}

	// each document owns its copy
	result.Rankings[0].ExtractedSkills[0] = "changed"
	assert.Equal(t, "golang", result.Rankings[1].ExtractedSkills[0])
}

func TestRankFallsBackWhenStrategyFails(t *testing.T) {
	strategy := &stubStrategy{err: errors.New("service unavailable")}

	result, err := engineWith(strategy, Options{}).Rank(context.Background(),
		[]resume.Document{textDoc("a", "React and TypeScript")}, "React developer", nil)
	require.NoError(t, err)

	require.Equal(t, resume.OutcomeRanked, result.Outcome)
	assert.Equal(t, keywords.BasicConfidence, *result.Rankings[0].Confidence)
}

func TestRankWithoutDocuments(t *testing.T) {
	strategy := &stubStrategy{}

	result, err := engineWith(strategy, Options{}).Rank(context.Background(), nil, "python developer", nil)
	require.NoError(t, err)

	assert.Empty(t, strategy.samples)
	assert.Equal(t, resume.OutcomeNoKeywords, result.Outcome)
	assert.True(t, result.NoSignal)
	require.NotNil(t, result.Message)
	assert.Equal(t, resume.MessageNoKeywords, *result.Message)
}

func TestRankBlankFirstDocumentKeepsLocalEnrichment(t *testing.T) {
	strategy := local.New(nil)
	require.NoError(t, strategy.Configure(context.Background(), enrichment.Credentials{}))
	engine := NewEngine(Options{
		Extractor: keywords.NewEnhancedExtractor(keywords.Options{Strategy: strategy}),
	})

	description := "python developer with great skills"
	docs := []resume.Document{
		textDoc("blank", ""),
		textDoc("dev", "python developer with great skills"),
	}

	result, err := engine.Rank(context.Background(), docs, description, nil)
	require.NoError(t, err)
	require.Equal(t, resume.OutcomeRanked, result.Outcome)
	require.Len(t, result.Rankings, 2)

	top := result.Rankings[0]
	assert.Equal(t, "dev", top.ID)
	assert.Equal(t, 2, top.TotalKeywords)
	assert.Equal(t, []string{"python", "r"}, top.Match.Matched)
	for _, ranked := range result.Rankings {
		require.NotNil(t, ranked.Confidence)
		assert.Equal(t, local.AnalysisConfidence, *ranked.Confidence)
	}
}

func TestRankRejectsUnextractedBinaryDocument(t *testing.T) {
	docs := []resume.Document{
		textDoc("a", "golang"),
		{ID: "b", Name: "cv.pdf", Kind: resume.KindBinary},
	}

	_, err := NewEngine(Options{}).Rank(context.Background(), docs, "golang", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, resume.ErrInvalidInput))
}

func TestRankRejectsDocumentWithoutKind(t *testing.T) {
	_, err := NewEngine(Options{}).Rank(context.Background(),
		[]resume.Document{{ID: "a", Text: "golang"}}, "golang", nil)
	assert.ErrorIs(t, err, resume.ErrInvalidInput)
}

func TestRankReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(Options{}).Rank(ctx, []resume.Document{textDoc("a", "golang")}, "golang", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRankLogsSteps(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	engine := NewEngine(Options{Logger: zap.New(core), Limit: 1})

	docs := []resume.Document{textDoc("a", "golang"), textDoc("b", "baking")}
	_, err := engine.Rank(context.Background(), docs, "golang", nil)
	require.NoError(t, err)

	steps := observed.FilterMessage("ranking step").All()
	names := make([]string, 0, len(steps))
	for _, entry := range steps {
		names = append(names, entry.ContextMap()["name"].(string))
	}
	assert.Equal(t, []string{"validate", "score", "gate", "truncate"}, names)

	gate := steps[2].ContextMap()
	assert.EqualValues(t, 2, gate["initial"])
	assert.EqualValues(t, 1, gate["dropped"])
	assert.EqualValues(t, 1, gate["left"])
}

func TestQuickScore(t *testing.T) {
	engine := NewEngine(Options{})
	doc := textDoc("a", "python pandas")

	got := engine.QuickScore(&doc, "python pandas", nil)
	assert.InDelta(t, 0.6, got.Score, 1e-9)
	assert.Equal(t, 2, got.MatchedKeywords)

	role := &resume.RoleProfile{Keywords: []string{"python", "pandas"}}
	got = engine.QuickScore(&doc, "python pandas", role)
	assert.InDelta(t, 0.9, got.Score, 1e-9)
	assert.Equal(t, 1.0, got.RoleMatch)

	assert.Zero(t, engine.QuickScore(nil, "python", nil).Score)
}
