// Package mock provides a test double implementation of ai.Embedder.
//
// The mock allows tests to run without an external embedding service and
// enables controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Default behavior: deterministic vectors derived from the text hash
//	embedder := mock.NewMockEmbedder(core.NewVectorSpace("mock", 8))
//	emb, err := embedder.EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) (core.Embedding, error) {
//	    return core.Embedding{}, errors.New("simulated outage")
//	}
//
//	// Check call counts
//	count := embedder.CallCount()
//
// Identical input text always produces the identical vector, so
// self-similarity assertions hold without a real model.
package mock
