package ai

import "errors"

var (
	// ErrEmbedderRequired is returned when a decorated embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidMaxAttempts is returned for a retry budget below one attempt.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")
)
