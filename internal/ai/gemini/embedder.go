package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultEmbeddingModel = "gemini-embedding-001"

// contentEmbedder is the part of the genai models service the embedder
// relies on.
type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Embedder turns skill labels into fixed-dimension vectors via the Gemini
// embedding API. It implements the scorer's embedding capability.
type Embedder struct {
	models     contentEmbedder
	model      string
	dimensions int
	timeout    time.Duration
	logger     *zap.Logger
}

func NewEmbedder(client *genai.Client, model string, dimensions int, timeout time.Duration, logger *zap.Logger) *Embedder {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultEmbeddingModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Embedder{
		models:     client.Models,
		model:      model,
		dimensions: dimensions,
		timeout:    timeout,
		logger:     logger,
	}
}

// EmbedStrings embeds all texts in a single batched call. The response must
// contain exactly one vector per input, in order; anything else is an error
// rather than a silently shortened result.
func (e *Embedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, &genai.Content{
			Parts: []*genai.Part{{Text: text}},
		})
	}

	config := &genai.EmbedContentConfig{TaskType: "SEMANTIC_SIMILARITY"}
	if e.dimensions > 0 {
		config.OutputDimensionality = genai.Ptr(int32(e.dimensions))
	}

	resp, err := e.models.EmbedContent(ctx, e.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if resp == nil || len(resp.Embeddings) != len(texts) {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		return nil, fmt.Errorf("embedding response has %d vectors for %d inputs", got, len(texts))
	}

	vectors := make([][]float64, len(texts))
	for i, embedding := range resp.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, errors.New("embedding response contains an empty vector")
		}
		vector := make([]float64, len(embedding.Values))
		for j, value := range embedding.Values {
			vector[j] = float64(value)
		}
		vectors[i] = vector
	}

	e.logger.Debug("embedded texts",
		zap.Int("count", len(texts)),
		zap.Int("dimensions", len(vectors[0])),
		zap.String("model", e.model),
	)

	return vectors, nil
}
