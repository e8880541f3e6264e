// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/retrievit/core"
)

// retryEmbedder decorates an Embedder with exponential-backoff retries.
// Retry policy belongs to the capability, never to the indexes consuming it.
type retryEmbedder struct {
	inner       Embedder
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// WithRetry wraps embedder so each call is attempted up to maxAttempts
// times with exponential backoff starting at baseDelay. The error from the
// last attempt is returned unmodified if all attempts fail.
func WithRetry(embedder Embedder, maxAttempts int, baseDelay time.Duration) (Embedder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if maxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}

	return &retryEmbedder{
		inner:       embedder,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      slog.Default().With("component", "retry-embedder"),
	}, nil
}

func (r *retryEmbedder) Space() core.VectorSpace {
	return r.inner.Space()
}

func (r *retryEmbedder) EmbedText(ctx context.Context, text string) (core.Embedding, error) {
	var emb core.Embedding
	err := r.retry(ctx, func() error {
		var embErr error
		emb, embErr = r.inner.EmbedText(ctx, text)
		return embErr
	})
	if err != nil {
		return core.Embedding{}, err
	}
	return emb, nil
}

func (r *retryEmbedder) EmbedTexts(ctx context.Context, texts []string) ([]core.Embedding, error) {
	var embs []core.Embedding
	err := r.retry(ctx, func() error {
		var embErr error
		embs, embErr = r.inner.EmbedTexts(ctx, texts)
		return embErr
	})
	if err != nil {
		return nil, err
	}
	return embs, nil
}

// retry runs operation with exponential backoff: baseDelay * 2^(attempt-1)
// between attempts, aborting as soon as ctx is done.
func (r *retryEmbedder) retry(ctx context.Context, operation func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				r.logger.Debug("embedding succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		r.logger.Debug("embedding failed, will retry",
			"attempt", attempt, "maxAttempts", r.maxAttempts, "err", lastErr)

		if attempt == r.maxAttempts {
			break
		}

		delay := r.baseDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}
