package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/retrievit/ai"
	"github.com/poiesic/retrievit/core"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
type Embedder struct {
	embedder embeddings.Embedder
	space    core.VectorSpace
	logger   *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for embeddings. Local
	// OpenAI-compatible services accept any token.
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(config.APIKey),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		space:    config.Space(),
		logger:   slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// Space returns the vector space named by the configured model and dimension.
func (e *Embedder) Space() core.VectorSpace {
	return e.space
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) (core.Embedding, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text))

	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return core.Embedding{}, err
	}

	if len(vectors) == 0 {
		e.logger.Warn("embedder returned empty result")
		return core.Embedding{}, fmt.Errorf("embedding service returned no vector for text")
	}

	return e.tagged(vectors[0])
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([]core.Embedding, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}

	embs := make([]core.Embedding, len(vectors))
	for i, vector := range vectors {
		embs[i], err = e.tagged(vector)
		if err != nil {
			return nil, err
		}
	}
	return embs, nil
}

// tagged wraps a raw vector in the embedder's space, rejecting vectors
// whose length disagrees with the configured dimension.
func (e *Embedder) tagged(vector []float32) (core.Embedding, error) {
	emb := core.Embedding{Space: e.space, Values: vector}
	if err := core.ValidateEmbedding(emb); err != nil {
		e.logger.Error("embedding service returned malformed vector",
			"space", e.space, "length", len(vector))
		return core.Embedding{}, err
	}
	return emb, nil
}
