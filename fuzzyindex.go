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

	"github.com/poiesic/retrievit/chunk"
	"github.com/poiesic/retrievit/core"
	"github.com/poiesic/retrievit/index"
	"github.com/poiesic/retrievit/source"
)

// FuzzySearchIndex indexes documents for approximate lexical search:
// each document is chunked by the configured strategy and the raw chunk
// text is stored in a fuzzy index. No embedding is involved, so extending
// never blocks on a remote service.
type FuzzySearchIndex struct {
	strategy chunk.Strategy
	index    *index.FuzzyIndex
}

// FuzzyOption configures a FuzzySearchIndex.
type FuzzyOption func(*FuzzySearchIndex) error

// WithStrategy replaces the default one-sentence-per-chunk strategy.
func WithStrategy(strategy chunk.Strategy) FuzzyOption {
	return func(f *FuzzySearchIndex) error {
		if strategy == nil {
			return ErrStrategyRequired
		}
		f.strategy = strategy
		return nil
	}
}

// NewFuzzySearchIndex creates an empty fuzzy search index. Without options
// it chunks documents one sentence at a time with no overlap.
func NewFuzzySearchIndex(opts ...FuzzyOption) (*FuzzySearchIndex, error) {
	strategy, err := chunk.NewSentence(1, 0)
	if err != nil {
		return nil, err
	}

	f := &FuzzySearchIndex{
		strategy: strategy,
		index:    index.NewFuzzyIndex(),
	}

	for _, opt := range opts {
		if optErr := opt(f); optErr != nil {
			return nil, optErr
		}
	}

	return f, nil
}

// Extend chunks the given documents and inserts their raw text.
// Cancellation is observed between documents; chunks inserted before a
// cancellation stay in the index.
func (f *FuzzySearchIndex) Extend(ctx context.Context, docs ...core.Document) error {
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		for c := range f.strategy.Chunks(doc) {
			f.index.Insert(c, c.Text)
		}
	}

	return nil
}

// ExtendSource loads the source's documents and extends the index with
// them.
func (f *FuzzySearchIndex) ExtendSource(ctx context.Context, src source.Source) error {
	docs, err := src.Documents(ctx)
	if err != nil {
		return err
	}
	return f.Extend(ctx, docs...)
}

// Search returns up to k chunks ranked by descending approximate lexical
// similarity to the query.
func (f *FuzzySearchIndex) Search(query string, k int) []core.SearchResult {
	return f.index.Query(query, k)
}

// Len returns the number of indexed chunks.
func (f *FuzzySearchIndex) Len() int {
	return f.index.Len()
}
