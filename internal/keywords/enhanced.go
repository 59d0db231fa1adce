package keywords

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/enrichment"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/resume"
	"github.com/spigell/resume-ranker/internal/vocabulary"
)

// BasicConfidence is reported when enrichment falls back to the basic path.
const BasicConfidence = 0.7

// EnhancedExtractor asks an enrichment strategy first and degrades to the
// basic extractor when the strategy is missing, unavailable or failing.
type EnhancedExtractor struct {
	basic    *Extractor
	skills   vocabulary.Vocabulary
	levels   vocabulary.Levels
	strategy enrichment.Strategy
	logger   *zap.Logger
}

// Options configures an EnhancedExtractor. Zero values select the built-in
// vocabularies.
type Options struct {
	Keywords *vocabulary.Vocabulary
	Skills   *vocabulary.Vocabulary
	Levels   vocabulary.Levels
	Strategy enrichment.Strategy
	Logger   *zap.Logger
}

func NewEnhancedExtractor(opts Options) *EnhancedExtractor {
	keywordsVocab := vocabulary.BasicKeywords()
	if opts.Keywords != nil {
		keywordsVocab = *opts.Keywords
	}

	skills := vocabulary.BasicSkills()
	if opts.Skills != nil {
		skills = *opts.Skills
	}

	levels := opts.Levels
	if len(levels) == 0 {
		levels = vocabulary.BasicLevels()
	}

	status := enrichment.Describe(opts.Strategy)

	return &EnhancedExtractor{
		basic:    NewExtractor(keywordsVocab),
		skills:   skills,
		levels:   levels,
		strategy: opts.Strategy,
		logger:   logger.WithCommonFields(opts.Logger, status.Provider, status.Model),
	}
}

// Basic exposes the underlying basic extractor.
func (e *EnhancedExtractor) Basic() *Extractor {
	return e.basic
}

// ExtractEnhanced returns the keyword set and enrichment signals for one
// ranking call. Strategy failures are logged and swallowed; the only error
// returned is the context error when ctx is done.
func (e *EnhancedExtractor) ExtractEnhanced(ctx context.Context, description string, role *resume.RoleProfile, sample string) (*resume.Enrichment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.strategy != nil && e.strategy.Available() {
		enriched, err := e.fromStrategy(ctx, description, role, sample)
		if err == nil {
			return enriched, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		e.logger.Warn("enrichment failed, falling back to basic extraction", zap.Error(err))
	}

	return e.fallback(description, role, sample), nil
}

func (e *EnhancedExtractor) fromStrategy(ctx context.Context, description string, role *resume.RoleProfile, sample string) (*resume.Enrichment, error) {
	enriched, err := e.strategy.Enrich(ctx, description, role, sample)
	if err != nil {
		return nil, err
	}
	if enriched == nil {
		return nil, errors.New("strategy returned no enrichment")
	}

	// role keywords always lead the set, whatever the strategy returned
	keywords := resume.NewKeywordSet(role.KeywordList()...)
	keywords.Add(enriched.Keywords.Items()...)

	confidence := enriched.Confidence
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("strategy confidence %.2f is out of range", confidence)
	}

	level := enriched.ExperienceLevel
	if level == "" {
		level = resume.LevelUnknown
	}

	skills := enriched.ExtractedSkills
	if skills == nil {
		skills = []string{}
	}

	e.logger.Debug("enrichment succeeded",
		zap.Int("keywords", keywords.Len()),
		zap.Int("skills", len(skills)),
		zap.Float64("confidence", confidence),
		zap.String("experience_level", string(level)),
	)

	return &resume.Enrichment{
		Keywords:        keywords,
		Confidence:      confidence,
		ExtractedSkills: skills,
		ExperienceLevel: level,
	}, nil
}

func (e *EnhancedExtractor) fallback(description string, role *resume.RoleProfile, sample string) *resume.Enrichment {
	return &resume.Enrichment{
		Keywords:        e.basic.Extract(description, role),
		Confidence:      BasicConfidence,
		ExtractedSkills: e.skills.Within(sample),
		ExperienceLevel: resume.ExperienceLevel(e.levels.Classify(sample, vocabulary.LevelEntry)),
	}
}
