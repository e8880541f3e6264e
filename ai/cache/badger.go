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


package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/retrievit/ai"
	"github.com/poiesic/retrievit/core"
)

const embeddingKeyPrefix = "embvec"

// BadgerCache is a persistent embedding cache decorating an ai.Embedder.
// Vectors are stored in a BadgerDB instance keyed by vector space and
// content hash; cache hits never reach the inner embedder.
type BadgerCache struct {
	inner  ai.Embedder
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBadgerCache opens a persistent embedding cache at filePath, creating
// the directory if it doesn't exist, and wraps embedder with it.
func OpenBadgerCache(filePath string, embedder ai.Embedder) (*BadgerCache, error) {
	return openBadgerCache(filePath, false, embedder)
}

func openBadgerCache(filePath string, inMemory bool, embedder ai.Embedder) (*BadgerCache, error) {
	if embedder == nil {
		return nil, ai.ErrEmbedderRequired
	}

	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	logger := slog.Default().With("component", "embedding-cache")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerCache{
		inner:  embedder,
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the underlying BadgerDB instance.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}

// Space returns the inner embedder's vector space.
func (c *BadgerCache) Space() core.VectorSpace {
	return c.inner.Space()
}

// EmbedText returns the cached vector for text when present, otherwise
// delegates to the inner embedder and stores the result.
func (c *BadgerCache) EmbedText(ctx context.Context, text string) (core.Embedding, error) {
	key := makeEmbeddingKey(c.inner.Space(), text)

	if values, ok := c.lookup(key); ok {
		return core.Embedding{Space: c.inner.Space(), Values: values}, nil
	}

	emb, err := c.inner.EmbedText(ctx, text)
	if err != nil {
		return core.Embedding{}, err
	}

	c.store(key, emb.Values)
	return emb, nil
}

// EmbedTexts serves each text from the cache where possible and batches
// the remaining misses through the inner embedder.
func (c *BadgerCache) EmbedTexts(ctx context.Context, texts []string) ([]core.Embedding, error) {
	space := c.inner.Space()
	embs := make([]core.Embedding, len(texts))

	var missed []string
	var missedAt []int
	for i, text := range texts {
		if values, ok := c.lookup(makeEmbeddingKey(space, text)); ok {
			embs[i] = core.Embedding{Space: space, Values: values}
			continue
		}
		missed = append(missed, text)
		missedAt = append(missedAt, i)
	}

	if len(missed) == 0 {
		return embs, nil
	}

	fresh, err := c.inner.EmbedTexts(ctx, missed)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missed) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(fresh), len(missed))
	}

	for j, emb := range fresh {
		c.store(makeEmbeddingKey(space, missed[j]), emb.Values)
		embs[missedAt[j]] = emb
	}
	return embs, nil
}

// lookup reads a cached vector. A missing key, a malformed blob, or a
// length disagreeing with the space's dimension all count as a miss.
func (c *BadgerCache) lookup(key []byte) ([]float32, bool) {
	var values []float32

	err := c.withTx(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			values, err = decodeVector(val)
			return err
		})
	}, false)

	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.logger.Warn("discarding unreadable cache entry", "err", err)
		}
		return nil, false
	}

	if len(values) != c.inner.Space().Dimension() {
		c.logger.Warn("discarding cached vector with wrong dimension",
			"got", len(values), "want", c.inner.Space().Dimension())
		return nil, false
	}
	return values, true
}

// store writes a vector under key. A failed write only costs a future
// cache miss, so the error is logged rather than surfaced.
func (c *BadgerCache) store(key []byte, values []float32) {
	err := c.withTx(func(tx *badger.Txn) error {
		return tx.Set(key, encodeVector(values))
	}, true)
	if err != nil {
		c.logger.Warn("failed to store embedding in cache", "err", err)
	}
}

// withTx executes a function within a BadgerDB transaction.
// If isWrite is true, the transaction is committed after fn succeeds.
func (c *BadgerCache) withTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := c.db.NewTransaction(isWrite)
	defer tx.Discard()

	if err := fn(tx); err != nil {
		return err
	}
	if isWrite {
		return tx.Commit()
	}
	return nil
}

// makeEmbeddingKey generates the cache key for text embedded in space.
// Format: prefix:space:contentID
func makeEmbeddingKey(space core.VectorSpace, text string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", embeddingKeyPrefix, space, core.IDFromContent(text)))
}
