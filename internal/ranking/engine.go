// Package ranking orders resumes against a job description and an optional
// role profile.
package ranking

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-ranker/internal/keywords"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/resume"
	"github.com/spigell/resume-ranker/internal/scoring"
)

// DefaultLimit is how many documents a successful ranking returns.
const DefaultLimit = 5

// Score composition.
const (
	MatchWeight  = 0.5
	RoleWeight   = 0.3
	DomainWeight = 0.2

	// BoostThreshold is exclusive.
	BoostThreshold = 0.8
	BoostFactor    = 1.1
)

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Extractor   *keywords.EnhancedExtractor
	Domain      *scoring.DomainScorer
	Limit       int
	Parallelism int
	Logger      *zap.Logger
}

// Engine is safe for concurrent use; calls share no mutable state.
type Engine struct {
	extractor   *keywords.EnhancedExtractor
	domain      *scoring.DomainScorer
	limit       int
	parallelism int
	logger      *zap.Logger
}

func NewEngine(opts Options) *Engine {
	log := logger.OrNop(opts.Logger)

	extractor := opts.Extractor
	if extractor == nil {
		extractor = keywords.NewEnhancedExtractor(keywords.Options{Logger: log})
	}

	domain := opts.Domain
	if domain == nil {
		domain = scoring.NewDomainScorer(scoring.DefaultDomainVocabulary())
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	return &Engine{
		extractor:   extractor,
		domain:      domain,
		limit:       limit,
		parallelism: parallelism,
		logger:      log,
	}
}

// Rank scores every document, sorts them by score and returns the top of
// the list, or one of the no-signal results. The returned error is either
// ErrInvalidInput (wrapped) or the context error.
func (e *Engine) Rank(ctx context.Context, docs []resume.Document, description string, role *resume.RoleProfile) (*resume.RankingResult, error) {
	for i := range docs {
		if err := docs[i].Validate(); err != nil {
			return nil, fmt.Errorf("document #%d: %w", i+1, err)
		}
	}
	e.step("validate", Step{Initial: len(docs), Left: len(docs)})

	keywordSet, enriched, err := e.extract(ctx, docs, description, role)
	if err != nil {
		return nil, err
	}

	if keywordSet.IsEmpty() {
		e.logger.Info("no keywords extracted from the job description")
		return resume.NoKeywords(), nil
	}

	scored, err := e.scoreAll(ctx, docs, keywordSet, description, role, enriched)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	matching := 0
	for i := range scored {
		if scored[i].MatchedCount > 0 {
			matching++
		}
	}
	e.step("gate", Step{Initial: len(scored), Dropped: len(scored) - matching, Left: matching})

	if matching == 0 {
		e.logger.Info("no document matched any keyword", zap.Int("keywords", keywordSet.Len()))
		return resume.NoMatches(), nil
	}

	// the gate only decides the outcome; truncation applies to the full list
	top := scored
	if len(top) > e.limit {
		top = top[:e.limit]
	}
	e.step("truncate", Step{Initial: len(scored), Dropped: len(scored) - len(top), Left: len(top)})

	return resume.Ranked(top), nil
}

func (e *Engine) extract(ctx context.Context, docs []resume.Document, description string, role *resume.RoleProfile) (resume.KeywordSet, *resume.Enrichment, error) {
	// keywords are only extracted when there is something to score
	if len(docs) == 0 {
		e.logger.Debug("no documents, skipping keyword extraction")
		return resume.KeywordSet{}, nil, nil
	}

	enriched, err := e.extractor.ExtractEnhanced(ctx, description, role, docs[0].Text)
	if err != nil {
		return resume.KeywordSet{}, nil, err
	}

	e.logger.Debug("keywords extracted",
		zap.Int("keywords", enriched.Keywords.Len()),
		zap.Float64("confidence", enriched.Confidence),
		zap.String("experience_level", string(enriched.ExperienceLevel)),
		zap.String("sample_document_id", docs[0].ID),
	)

	return enriched.Keywords, enriched, nil
}

func (e *Engine) scoreAll(ctx context.Context, docs []resume.Document, set resume.KeywordSet, description string, role *resume.RoleProfile, enriched *resume.Enrichment) ([]resume.ScoredDocument, error) {
	scored := make([]resume.ScoredDocument, len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for i := range docs {
		if err := gCtx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			scored[i] = e.score(&docs[i], set, description, role, enriched)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.step("score", Step{Initial: len(docs), Left: len(scored)})
	return scored, nil
}

func (e *Engine) score(doc *resume.Document, set resume.KeywordSet, description string, role *resume.RoleProfile, enriched *resume.Enrichment) resume.ScoredDocument {
	match := scoring.Match(doc.Text, set)
	roleMatch := scoring.RoleMatch(doc, role)
	domain := e.domain.Expertise(doc, description)

	score := match.Ratio*MatchWeight + roleMatch*RoleWeight + domain*DomainWeight

	result := resume.ScoredDocument{
		Document:        *doc,
		MatchedCount:    len(match.Matched),
		Unmatched:       match.Unmatched,
		TotalKeywords:   match.Total,
		RoleMatch:       roleMatch,
		DomainExpertise: domain,
		Match:           match,
	}

	if enriched != nil {
		if enriched.Confidence > BoostThreshold {
			score = min(1, score*BoostFactor)
		}
		confidence := enriched.Confidence
		result.Confidence = &confidence
		result.ExtractedSkills = append([]string{}, enriched.ExtractedSkills...)
		result.ExperienceLevel = enriched.ExperienceLevel
	}

	result.Score = min(1, score)

	e.logger.Debug("document scored",
		zap.String(logger.FieldDocument, doc.ID),
		zap.Float64("score", result.Score),
		zap.Int("matched", result.MatchedCount),
		zap.Int("total", result.TotalKeywords),
	)

	return result
}
