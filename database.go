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


package retrievit

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/retrievit/ai"
	"github.com/poiesic/retrievit/chunk"
	"github.com/poiesic/retrievit/core"
	"github.com/poiesic/retrievit/index"
	"github.com/poiesic/retrievit/source"
)

// DocumentDatabase indexes documents for semantic search: each document is
// chunked by the configured strategy, every chunk is embedded through the
// embedding capability, and the (chunk, embedding) pairs are stored in a
// vector index built for the capability's space.
type DocumentDatabase struct {
	embedder ai.Embedder
	strategy chunk.Strategy
	index    *index.VectorIndex
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a DocumentDatabase.
type Option func(*DocumentDatabase) error

// WithPoolSize sets the worker pool size for per-document embedding
// parallelism. Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(db *DocumentDatabase) error {
		if size < 1 {
			size = 1
		}

		if db.pool != nil {
			db.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		db.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(db *DocumentDatabase) error {
		if logger == nil {
			logger = slog.Default()
		}
		db.logger = logger.With("component", "document-database")
		return nil
	}
}

// New creates a document database around an embedding capability and a
// chunking strategy. The vector index is constructed from the embedder's
// own space, so stored entries and queries can never disagree on spaces.
func New(embedder ai.Embedder, strategy chunk.Strategy, opts ...Option) (*DocumentDatabase, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if strategy == nil {
		return nil, ErrStrategyRequired
	}
	if embedder.Space().IsZero() {
		return nil, core.ErrVectorSpaceRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	db := &DocumentDatabase{
		embedder: embedder,
		strategy: strategy,
		index:    index.NewVectorIndex(embedder.Space()),
		pool:     pool,
		logger:   slog.Default().With("component", "document-database"),
	}

	for _, opt := range opts {
		if optErr := opt(db); optErr != nil {
			db.pool.Release()
			return nil, optErr
		}
	}

	return db, nil
}

// Extend chunks, embeds, and indexes the given documents. Documents are
// processed in parallel across the worker pool; within one document chunks
// are embedded and inserted strictly in document order.
//
// The first embedding failure aborts the remaining work and is returned
// unmodified; chunks inserted before the failure stay in the index. The
// same applies when ctx is cancelled mid-call.
func (db *DocumentDatabase) Extend(ctx context.Context, docs ...core.Document) error {
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
		aborted  atomic.Bool
	)

	fail := func(err error) {
		once.Do(func() { firstErr = err })
		aborted.Store(true)
	}

	for _, doc := range docs {
		if aborted.Load() {
			break
		}

		wg.Add(1)
		if err := db.pool.Submit(func() {
			defer wg.Done()
			db.extendDocument(ctx, doc, &aborted, fail)
		}); err != nil {
			wg.Done()
			fail(err)
			break
		}
	}

	wg.Wait()
	return firstErr
}

// extendDocument embeds and inserts one document's chunks in order,
// stopping at the first failure or once another document has failed.
func (db *DocumentDatabase) extendDocument(ctx context.Context, doc core.Document, aborted *atomic.Bool, fail func(error)) {
	for c := range db.strategy.Chunks(doc) {
		if aborted.Load() {
			return
		}
		if err := ctx.Err(); err != nil {
			fail(err)
			return
		}

		emb, err := db.embedder.EmbedText(ctx, c.Text)
		if err != nil {
			db.logger.Error("embedding chunk failed",
				"document", doc.Title, "chunk", c.Index, "err", err)
			fail(err)
			return
		}

		if err := db.index.Insert(c, emb); err != nil {
			fail(err)
			return
		}
	}

	db.logger.Debug("document indexed", "document", doc.Title)
}

// ExtendSource loads the source's documents and extends the database with
// them.
func (db *DocumentDatabase) ExtendSource(ctx context.Context, src source.Source) error {
	docs, err := src.Documents(ctx)
	if err != nil {
		return err
	}
	return db.Extend(ctx, docs...)
}

// Search embeds the query through the same capability the index was built
// with and returns up to k chunks ranked by descending cosine similarity.
// k <= 0 yields an empty result without touching the embedding service.
func (db *DocumentDatabase) Search(ctx context.Context, query string, k int) ([]core.SearchResult, error) {
	if k <= 0 {
		return []core.SearchResult{}, nil
	}

	emb, err := db.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	return db.index.Query(emb, k)
}

// Len returns the number of indexed chunks.
func (db *DocumentDatabase) Len() int {
	return db.index.Len()
}

// Close releases the worker pool. The database should not be extended
// after calling Close.
func (db *DocumentDatabase) Close() error {
	db.pool.Release()
	return nil
}
