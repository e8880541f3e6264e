package retrievit

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedding capability is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrStrategyRequired is returned when a chunking strategy is not provided.
	ErrStrategyRequired = errors.New("chunk strategy required")
)
