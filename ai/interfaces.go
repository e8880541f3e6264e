package ai

import (
	"context"

	"github.com/poiesic/retrievit/core"
)

// Embedder turns text into vector embeddings for semantic similarity
// search. Every embedder produces vectors in exactly one space, declared
// by Space; consumers wire an index to that space at construction so a
// mismatch is impossible at query time.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// Space returns the one vector space this embedder produces.
	Space() core.VectorSpace

	// EmbedText generates an embedding for a single text string.
	// The returned embedding is tagged with Space().
	// Returns an error if embedding generation fails.
	EmbedText(ctx context.Context, text string) (core.Embedding, error)

	// EmbedTexts generates embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText repeatedly.
	// The returned slice contains embeddings in the same order as the input.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([]core.Embedding, error)
}
