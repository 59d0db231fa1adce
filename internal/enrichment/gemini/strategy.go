// Package gemini implements an enrichment strategy backed by Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/enrichment"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/resume"
	"github.com/spigell/resume-ranker/internal/utils"
)

const (
	providerName        = "gemini"
	defaultMaxLogLength = 200
	maxSampleRunes      = 20000
)

//go:embed system.md
var systemPrompt string

//go:embed prompt.md
var promptTemplate string

var ErrNotConfigured = errors.New("gemini enrichment is not configured")

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

type generatorFactory func(ctx context.Context, cfg ClientConfig, log *zap.Logger) (contentGenerator, error)

func defaultFactory(ctx context.Context, cfg ClientConfig, log *zap.Logger) (contentGenerator, error) {
	return NewGenerator(ctx, cfg, log)
}

// Strategy asks Gemini for the keywords of a job description and the
// skills and experience level of one resume.
type Strategy struct {
	cfg       ClientConfig
	logger    *zap.Logger
	maxLogLen int
	factory   generatorFactory

	mu        sync.RWMutex
	generator contentGenerator
}

// New returns a strategy that becomes available after Configure.
func New(cfg ClientConfig, log *zap.Logger, maxLogLength int) *Strategy {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Strategy{
		cfg:       cfg,
		logger:    logger.WithCommonFields(log, providerName, cfg.Model),
		maxLogLen: maxLogLength,
		factory:   defaultFactory,
	}
}

func newWithGenerator(generator contentGenerator, log *zap.Logger, maxLogLength int) *Strategy {
	s := New(ClientConfig{Model: generator.Model()}, log, maxLogLength)
	s.generator = generator
	return s
}

func (s *Strategy) Name() string { return providerName }

// Configure creates the Gemini client. Credentials override the API key
// and project given to New.
func (s *Strategy) Configure(ctx context.Context, creds enrichment.Credentials) error {
	cfg := s.cfg
	if key := strings.TrimSpace(creds.APIKey); key != "" {
		cfg.APIKey = key
	}
	if project := strings.TrimSpace(creds.ProjectID); project != "" {
		cfg.Project = project
	}

	generator, err := s.factory(ctx, cfg, s.logger)
	if err != nil {
		return fmt.Errorf("configure gemini enrichment: %w", err)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.generator = generator
	s.mu.Unlock()

	s.logger.Info("gemini enrichment configured",
		zap.String("model", generator.Model()),
		zap.Bool("vertex", strings.TrimSpace(cfg.APIKey) == ""),
	)
	return nil
}

func (s *Strategy) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generator != nil
}

func (s *Strategy) Status() enrichment.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := enrichment.Status{
		Provider:  providerName,
		Model:     s.cfg.Model,
		ProjectID: s.cfg.Project,
		Available: s.generator != nil,
	}
	if s.generator != nil {
		status.Model = s.generator.Model()
	}
	return status
}

func (s *Strategy) Enrich(ctx context.Context, description string, role *resume.RoleProfile, sample string) (*resume.Enrichment, error) {
	s.mu.RLock()
	generator := s.generator
	s.mu.RUnlock()

	if generator == nil {
		return nil, ErrNotConfigured
	}

	message := buildPrompt(description, role.KeywordList(), sample)

	s.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(message)),
		zap.String("prompt_preview", utils.TruncateForLog(message, s.maxLogLen)),
	)

	raw, err := generator.GenerateContent(ctx, systemPrompt, message)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	enriched, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	// role keywords lead the set even when the model dropped them
	keywords := resume.NewKeywordSet(role.KeywordList()...)
	keywords.Add(enriched.Keywords.Items()...)
	enriched.Keywords = keywords

	return enriched, nil
}

func buildPrompt(description string, roleKeywords []string, sample string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job description:\n{{DESCRIPTION}}\n\nRole keywords:\n{{ROLE_KEYWORDS}}\n\nResume:\n{{SAMPLE}}\n\nJSON Response:"
	}

	keywords := "none"
	if cleaned := cleanList(roleKeywords); len(cleaned) > 0 {
		keywords = strings.Join(cleaned, ", ")
	}

	sample = strings.TrimSpace(sample)
	if utf8.RuneCountInString(sample) > maxSampleRunes {
		sample = string([]rune(sample)[:maxSampleRunes])
	}
	if sample == "" {
		sample = "(empty)"
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = "(empty)"
	}

	return strings.NewReplacer(
		"{{DESCRIPTION}}", description,
		"{{ROLE_KEYWORDS}}", keywords,
		"{{SAMPLE}}", sample,
	).Replace(template)
}

func parseResponse(raw string) (*resume.Enrichment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	confidence := coerceFloat(data["confidence"])
	if math.IsNaN(confidence) {
		confidence = 0
	}
	confidence = math.Max(0, math.Min(1, confidence))

	return &resume.Enrichment{
		Keywords:        resume.NewKeywordSet(coerceStrings(data["keywords"])...),
		Confidence:      confidence,
		ExtractedSkills: resume.NewKeywordSet(coerceStrings(data["skills"])...).Items(),
		ExperienceLevel: resume.ParseExperienceLevel(coerceString(data["experienceLevel"])),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.Join(strings.Fields(item), " ")
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// coerceStrings accepts a JSON array or a comma separated string.
func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return cleanList(strings.Split(val, ","))
	default:
		return nil
	}
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(val), "%")
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		if strings.HasSuffix(strings.TrimSpace(val), "%") {
			f /= 100
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
