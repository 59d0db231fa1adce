package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/documents"
	"github.com/spigell/resume-ranker/internal/enrichment"
	"github.com/spigell/resume-ranker/internal/enrichment/gemini"
	"github.com/spigell/resume-ranker/internal/enrichment/local"
	"github.com/spigell/resume-ranker/internal/keywords"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/resume"
	"github.com/spigell/resume-ranker/internal/roles"
	"github.com/spigell/resume-ranker/internal/secrets"
)

const promptNoRole = "No role"

var rankCmd = &cobra.Command{
	Use:   "rank [flags] RESUME_FILE_OR_DIR...",
	Short: "Rank resumes against a job description",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("job", "J", "", "file with the job description, '-' reads stdin")
	rankCmd.Flags().StringP("role", "r", "", "id of a role profile to bias the ranking towards")
	rankCmd.Flags().StringP("keywords", "k", "", "comma separated keywords of a custom role")
	rankCmd.Flags().BoolP("select-role", "s", false, "choose the role profile interactively")
	rankCmd.Flags().IntP("limit", "l", 0, "how many resumes to return (default 5)")
	rankCmd.Flags().Bool("quick", false, "print the single-document quick score of every resume instead of a ranking")

	rankCmd.MarkFlagRequired("job")
	rankCmd.MarkFlagsMutuallyExclusive("role", "keywords", "select-role")

	viper.BindPFlag("ranking.limit", rankCmd.Flags().Lookup("limit"))
}

func rank(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	description, err := readJob(cmd.Flag("job").Value.String(), cmd.InOrStdin())
	if err != nil {
		logger.Fatal("reading the job description", zap.Error(err))
	}

	catalog, err := loadCatalog(config)
	if err != nil {
		logger.Fatal("loading role profiles", zap.Error(err))
	}

	role, err := chooseRole(cmd, catalog)
	if err != nil {
		logger.Fatal("choosing a role", zap.Error(err))
	}
	if role != nil {
		logger.Info("role selected", zap.String("role", role.ID), zap.Strings("keywords", role.Keywords))
	}

	loader := documents.NewLoader(documents.WithLogger(logger))
	docs, err := loader.Load(ctx, args...)
	if err != nil {
		logger.Fatal("loading resumes", zap.Error(err))
	}
	docs = skipUnextracted(docs, logger)

	strategy := newStrategy(ctx, config.Enrichment, logger)
	status := enrichment.Describe(strategy)
	logger.Info("enrichment",
		zap.String("provider", status.Provider),
		zap.String("model", status.Model),
		zap.Bool("available", status.Available),
	)

	engine := ranking.NewEngine(ranking.Options{
		Extractor: keywords.NewEnhancedExtractor(keywords.Options{
			Strategy: strategy,
			Logger:   logger,
		}),
		Limit:       viper.GetInt("ranking.limit"),
		Parallelism: config.Ranking.Parallelism,
		Logger:      logger,
	})

	var output any
	if quick, _ := cmd.Flags().GetBool("quick"); quick {
		output = quickScores(engine, docs, description, role)
	} else {
		result, err := engine.Rank(ctx, docs, description, role)
		if err != nil {
			logger.Fatal("ranking resumes", zap.Error(err))
		}
		if result.NoSignal {
			logger.Info("nothing to rank", zap.String("reason", *result.Message))
		}
		output = result
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		logger.Fatal("writing the result", zap.Error(err))
	}
}

func readJob(path string, stdin io.Reader) (string, error) {
	path = strings.TrimSpace(path)

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}

	return documents.Normalize(string(data)), nil
}

func loadCatalog(config *Config) (*roles.Catalog, error) {
	extra, err := roles.Decode(config.Roles)
	if err != nil {
		return nil, err
	}
	return roles.NewCatalog(extra...), nil
}

func chooseRole(cmd *cobra.Command, catalog *roles.Catalog) (*resume.RoleProfile, error) {
	if list := cmd.Flag("keywords").Value.String(); strings.TrimSpace(list) != "" {
		return roles.ParseKeywords(list)
	}

	if id := cmd.Flag("role").Value.String(); strings.TrimSpace(id) != "" {
		return catalog.Find(id)
	}

	if selectRole, _ := cmd.Flags().GetBool("select-role"); !selectRole {
		return nil, nil
	}

	profiles := catalog.List()
	items := make([]string, 0, len(profiles)+1)
	items = append(items, promptNoRole)
	for _, p := range profiles {
		items = append(items, fmt.Sprintf("%s / %s / %s", p.ID, p.Name, p.Description))
	}

	rolePrompt := promptui.Select{
		Label: "Choose a role profile and press ENTER",
		Items: items,
		Size:  len(items),
	}

	idx, _, err := rolePrompt.Run()
	if err != nil {
		return nil, err
	}
	if idx == 0 {
		return nil, nil
	}

	role := profiles[idx-1]
	return &role, nil
}

func skipUnextracted(docs []resume.Document, logger *zap.Logger) []resume.Document {
	kept := docs[:0]
	for _, doc := range docs {
		if doc.NeedsExtraction() {
			logger.Warn("skipping a resume without extracted text",
				zap.String("file", doc.Name),
				zap.String("hint", "convert the file to plain text first"),
			)
			continue
		}
		kept = append(kept, doc)
	}
	return kept
}

// newStrategy returns nil when enrichment is disabled or cannot be set up.
// Enrichment is best effort, so setup failures are only logged.
func newStrategy(ctx context.Context, cfg *EnrichmentConfig, logger *zap.Logger) enrichment.Strategy {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	var creds enrichment.Credentials
	if file := strings.TrimSpace(cfg.CredentialsFile); file != "" {
		loaded, err := secrets.LoadCredentials(file)
		if err != nil {
			logger.Warn("loading enrichment credentials", zap.Error(err))
			return nil
		}
		creds = loaded
	}

	var strategy interface {
		enrichment.Strategy
		enrichment.Configurable
	}

	switch provider := strings.ToLower(strings.TrimSpace(cfg.Provider)); provider {
	case "", "local":
		strategy = local.New(logger)
	case "gemini":
		g := cfg.Gemini
		if g == nil {
			g = &GeminiConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: g.APIKey,
			File:  g.APIKeyFile,
		})
		if err == nil {
			creds.APIKey = apiKey
		} else if creds.ProjectID == "" && strings.TrimSpace(g.Project) == "" {
			logger.Warn("gemini enrichment disabled",
				zap.Error(err),
				zap.String("hint", "set enrichment.gemini.api-key-file, GEMINI_API_KEY_FILE or a vertex project"),
			)
			return nil
		}
		strategy = gemini.New(gemini.ClientConfig{
			Project:    g.Project,
			Location:   g.Location,
			Model:      g.Model,
			MaxRetries: g.MaxRetries,
		}, logger, g.MaxLogLength)
	default:
		logger.Warn("unsupported enrichment provider", zap.String("provider", cfg.Provider))
		return nil
	}

	if err := strategy.Configure(ctx, creds); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		logger.Warn("configuring enrichment", zap.String("provider", strategy.Name()), zap.Error(err))
		return nil
	}

	return strategy
}

type quickScore struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	ranking.QuickResult
}

func quickScores(engine *ranking.Engine, docs []resume.Document, description string, role *resume.RoleProfile) []quickScore {
	out := make([]quickScore, 0, len(docs))
	for i := range docs {
		out = append(out, quickScore{
			ID:          docs[i].ID,
			Filename:    docs[i].Name,
			QuickResult: engine.QuickScore(&docs[i], description, role),
		})
	}
	return out
}

// redacted hides inline secrets before the config is logged.
func redacted(config *Config) *Config {
	if config == nil || config.Enrichment == nil || config.Enrichment.Gemini == nil {
		return config
	}

	copied := *config
	enrichmentCfg := *config.Enrichment
	geminiCfg := *config.Enrichment.Gemini
	if geminiCfg.APIKey != "" {
		geminiCfg.APIKey = "<redacted>"
	}
	enrichmentCfg.Gemini = &geminiCfg
	copied.Enrichment = &enrichmentCfg

	return &copied
}
