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


package index

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/poiesic/retrievit/core"
)

// VectorIndex stores (chunk, embedding) pairs from a single vector space
// and answers nearest-neighbor queries by cosine similarity.
// Safe for concurrent use.
type VectorIndex struct {
	mu      sync.RWMutex
	space   core.VectorSpace
	entries []vectorEntry
}

type vectorEntry struct {
	chunk  core.Chunk
	values []float32
}

// NewVectorIndex creates an empty index accepting embeddings from space.
func NewVectorIndex(space core.VectorSpace) *VectorIndex {
	return &VectorIndex{space: space}
}

// Space returns the vector space this index stores.
func (idx *VectorIndex) Space() core.VectorSpace {
	return idx.space
}

// Len returns the number of stored entries.
func (idx *VectorIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Insert stores the pair as one atomic step. The embedding must be valid
// and belong to the index's space; its vector is copied so later caller
// mutations cannot reach the index.
func (idx *VectorIndex) Insert(chunk core.Chunk, emb core.Embedding) error {
	if err := core.ValidateEmbedding(emb); err != nil {
		return err
	}
	if emb.Space != idx.space {
		return fmt.Errorf("%w: index %s, embedding %s", ErrSpaceMismatch, idx.space, emb.Space)
	}

	values := make([]float32, len(emb.Values))
	copy(values, emb.Values)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries = append(idx.entries, vectorEntry{chunk: chunk, values: values})
	return nil
}

// Query returns up to k stored chunks ranked by descending cosine
// similarity to emb. Ties rank earlier-inserted entries first. An empty
// index or k <= 0 yields an empty result, never an error.
func (idx *VectorIndex) Query(emb core.Embedding, k int) ([]core.SearchResult, error) {
	if err := core.ValidateEmbedding(emb); err != nil {
		return nil, err
	}
	if emb.Space != idx.space {
		return nil, fmt.Errorf("%w: index %s, query %s", ErrSpaceMismatch, idx.space, emb.Space)
	}
	if k <= 0 {
		return []core.SearchResult{}, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	type scored struct {
		position int
		score    float32
	}

	candidates := make([]scored, len(idx.entries))
	for i, entry := range idx.entries {
		candidates[i] = scored{position: i, score: cosineSimilarity(emb.Values, entry.values)}
	}

	slices.SortFunc(candidates, func(a, b scored) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		return a.position - b.position
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}

	results := make([]core.SearchResult, len(candidates))
	for rank, c := range candidates {
		results[rank] = core.SearchResult{
			Chunk: idx.entries[c.position].chunk,
			Score: c.score,
			Rank:  rank,
		}
	}
	return results, nil
}

// cosineSimilarity computes dot(a,b) / (|a| * |b|) with float64
// accumulation. Either vector being zero yields 0.
func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
