package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobfit/jobfit/internal/ai/gemini"
	"github.com/jobfit/jobfit/internal/analyzer"
	"github.com/jobfit/jobfit/internal/logger"
	"github.com/jobfit/jobfit/internal/match"
	"github.com/jobfit/jobfit/internal/secrets"
)

// buildPipeline wires the Gemini-backed analysis pipeline from configuration.
func buildPipeline(ctx context.Context, config *Config, zlog *zap.Logger) (*analyzer.Analyzer, error) {
	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	client, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	genLogger := logger.WithCommonFields(zlog, provider, config.AI.Gemini.Model)
	generator := gemini.NewGenerator(client, config.AI.Gemini.Model, config.AI.Gemini.MaxRetries, config.AI.Gemini.RequestTimeout, genLogger)
	parser := gemini.NewExtractor(generator, config.AI.Gemini.MaxLogLength, genLogger)
	writer := gemini.NewWriter(generator, genLogger)

	embedLogger := logger.WithCommonFields(zlog, provider, config.AI.Gemini.EmbeddingModel)
	embedder := gemini.NewEmbedder(client, config.AI.Gemini.EmbeddingModel, config.Matching.EmbeddingDimensions, config.AI.Gemini.RequestTimeout, embedLogger)

	scorer := match.NewScorer(embedder, config.Matching.SimilarityThreshold, config.Matching.EmbeddingDimensions, zlog)

	return analyzer.New(parser, writer, scorer, config.Limits.MaxTextLength, zlog), nil
}

func newLogger() (*zap.Logger, error) {
	return logger.New(viper.GetBool("json"), viper.GetBool("debug"))
}
