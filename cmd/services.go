package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/ai"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/ai/gemini"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/candidate"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/explain"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/logger"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/scoring"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/secrets"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/skills"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/textsource"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

// services holds the components shared by the commands. All of them are
// built once and safe for concurrent use.
type services struct {
	parser    *candidate.Parser
	scorer    *scoring.Scorer
	explainer *explain.Generator
}

func newServices(ctx context.Context, config *Config, log *zap.Logger) (*services, error) {
	registry := skills.NewRegistry()

	var (
		names      ai.NameRecognizer
		similarity ai.SimilarityScorer
	)

	if config.AI.Enabled {
		client, err := newAIClient(ctx, config.AI, log)
		if err != nil {
			return nil, err
		}

		aiLogger := logger.WithCommonFields(log, gemini.Provider, client.Model())
		if config.AI.NameRecognition {
			names = gemini.NewNameRecognizer(client, aiLogger, config.AI.Gemini.MaxLogLength)
		}
		if config.AI.SemanticSimilarity {
			similarity = gemini.NewSimilarity(client)
		}

		log.Info("ai collaborators enabled",
			append(logger.CommonFields(gemini.Provider, client.Model()),
				zap.Bool("name_recognition", names != nil),
				zap.Bool("semantic_similarity", similarity != nil),
				zap.String("embedding_model", client.EmbeddingModel()),
			)...,
		)
	}

	opts := make([]candidate.Option, 0, 1)
	if names != nil {
		opts = append(opts, candidate.WithNameRecognizer(names))
	}

	return &services{
		parser:    candidate.NewParser(registry, log, opts...),
		scorer:    scoring.NewScorer(registry, similarity, log),
		explainer: explain.NewGenerator(*config.Explanation),
	}, nil
}

func newAIClient(ctx context.Context, cfg *AIConfig, log *zap.Logger) (*gemini.Client, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   geminiAPIKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or %s)", err, geminiAPIKeyEnv)
	}

	clientLogger := logger.WithFields(log,
		append(logger.CommonFields(gemini.Provider, cfg.Gemini.Model),
			zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))...,
	)

	return gemini.NewClient(ctx, gemini.Options{
		APIKey:         apiKey,
		Model:          cfg.Gemini.Model,
		EmbeddingModel: cfg.Gemini.EmbeddingModel,
		MaxRetries:     cfg.Gemini.MaxRetries,
	}, clientLogger)
}

// loadProfile reads a résumé file and parses it. The file name is the candidate id.
func (s *services) loadProfile(ctx context.Context, path string) (*candidate.Profile, error) {
	text, err := textsource.Load(path)
	if err != nil {
		return nil, err
	}
	return s.parser.Parse(ctx, text, filepath.Base(path)), nil
}

// withoutText returns a copy of p that does not carry the raw résumé.
func withoutText(p *candidate.Profile) *candidate.Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.RawText = ""
	return &c
}

func writeJSON(w io.Writer, v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(pretty))
	return err
}
