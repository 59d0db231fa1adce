// Package local implements the reference enrichment strategy: an extended
// vocabulary scan plus ordered experience indicators, with no network calls.
package local

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/enrichment"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/resume"
	"github.com/spigell/resume-ranker/internal/vocabulary"
)

const (
	providerName     = "local"
	defaultProjectID = "local"

	// AnalysisConfidence is what the text analysis reports for any text,
	// blank included. It is a placeholder, not a measurement.
	AnalysisConfidence = 0.95
)

var ErrNotConfigured = errors.New("local enrichment is not configured")

// Strategy is unavailable until Configure is called.
type Strategy struct {
	vocab  vocabulary.Vocabulary
	levels vocabulary.Levels
	logger *zap.Logger

	mu        sync.RWMutex
	projectID string
}

// Option customises a Strategy.
type Option func(*Strategy)

// WithVocabulary replaces the extended tech vocabulary.
func WithVocabulary(v vocabulary.Vocabulary) Option {
	return func(s *Strategy) { s.vocab = v }
}

// WithLevels replaces the experience indicator groups.
func WithLevels(l vocabulary.Levels) Option {
	return func(s *Strategy) { s.levels = l }
}

func New(log *zap.Logger, opts ...Option) *Strategy {
	s := &Strategy{
		vocab:  vocabulary.ExtendedTech(),
		levels: vocabulary.ExtendedLevels(),
		logger: logger.WithCommonFields(log, providerName, ""),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Strategy) Name() string { return providerName }

// Configure makes the strategy available. An empty project ID is replaced
// by a default one.
func (s *Strategy) Configure(_ context.Context, creds enrichment.Credentials) error {
	project := strings.TrimSpace(creds.ProjectID)
	if project == "" {
		project = defaultProjectID
	}

	s.mu.Lock()
	s.projectID = project
	s.mu.Unlock()

	s.logger.Info("local enrichment configured", zap.String("project_id", project))
	return nil
}

func (s *Strategy) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectID != ""
}

func (s *Strategy) Status() enrichment.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return enrichment.Status{
		Provider:  providerName,
		ProjectID: s.projectID,
		Available: s.projectID != "",
	}
}

// Enrich seeds keywords with the role keywords, adds vocabulary terms found
// in the description, collects vocabulary terms found in the sample as
// skills and classifies the sample's experience level.
func (s *Strategy) Enrich(ctx context.Context, description string, role *resume.RoleProfile, sample string) (*resume.Enrichment, error) {
	if !s.Available() {
		return nil, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analysis := Analyze(sample)

	var keywords resume.KeywordSet
	keywords.Add(role.KeywordList()...)
	keywords.Add(s.vocab.Within(description)...)

	level := s.levels.Classify(analysis.Text, vocabulary.LevelEntry)

	s.logger.Debug("text analysed",
		zap.Int("blocks", len(analysis.Blocks)),
		zap.String("language", analysis.Language),
		zap.Int("keywords", keywords.Len()),
	)

	return &resume.Enrichment{
		Keywords:        keywords,
		Confidence:      analysis.Confidence,
		ExtractedSkills: s.vocab.Within(analysis.Text),
		ExperienceLevel: resume.ExperienceLevel(level),
	}, nil
}

// Block is one line of analysed text.
type Block struct {
	Text       string
	Confidence float64
	Line       int
}

// Analysis is the result of Analyze.
type Analysis struct {
	Text       string
	Language   string
	Confidence float64
	Blocks     []Block
}

// Analyze splits text into line blocks. Every block and the analysis as a
// whole carry AnalysisConfidence; the language is always "en". Blank text
// yields a single empty block.
func Analyze(text string) *Analysis {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))
	for i, line := range lines {
		blocks = append(blocks, Block{
			Text:       strings.TrimSpace(line),
			Confidence: AnalysisConfidence,
			Line:       i,
		})
	}

	return &Analysis{
		Text:       text,
		Language:   "en",
		Confidence: AnalysisConfidence,
		Blocks:     blocks,
	}
}
