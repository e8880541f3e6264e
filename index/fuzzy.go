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
	"slices"
	"sync"

	"github.com/poiesic/retrievit/core"
	"github.com/xrash/smetrics"
)

// Jaro-Winkler parameters: prefix boost applies above this similarity,
// considering at most this many leading characters.
const (
	jaroWinklerBoostThreshold = 0.7
	jaroWinklerPrefixSize     = 4
)

// FuzzyIndex stores (chunk, text) pairs and answers approximate lexical
// queries tolerant of typos and partial matches. Safe for concurrent use.
type FuzzyIndex struct {
	mu      sync.RWMutex
	entries []fuzzyEntry
}

type fuzzyEntry struct {
	chunk  core.Chunk
	tokens []string
}

// NewFuzzyIndex creates an empty fuzzy index.
func NewFuzzyIndex() *FuzzyIndex {
	return &FuzzyIndex{}
}

// Len returns the number of stored entries.
func (idx *FuzzyIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Insert stores text keyed by chunk as one atomic step. The text is
// tokenized once here so queries only pay for scoring.
func (idx *FuzzyIndex) Insert(chunk core.Chunk, text string) {
	tokens := tokenize(text)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries = append(idx.entries, fuzzyEntry{chunk: chunk, tokens: tokens})
}

// Query returns up to k stored chunks ranked by descending lexical
// similarity to text. Ties rank earlier-inserted entries first. An empty
// index, k <= 0, or a query with no tokens all yield an empty result.
func (idx *FuzzyIndex) Query(text string, k int) []core.SearchResult {
	query := tokenize(text)
	if k <= 0 || len(query) == 0 {
		return []core.SearchResult{}
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	type scored struct {
		position int
		score    float32
	}

	candidates := make([]scored, len(idx.entries))
	for i, entry := range idx.entries {
		candidates[i] = scored{position: i, score: lexicalSimilarity(query, entry.tokens)}
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
	return results
}

// lexicalSimilarity scores a tokenized query against stored tokens in
// [0, 1]: each query token takes its best Jaro-Winkler similarity over the
// stored tokens and the score is the mean of those bests. A query whose
// tokens all appear verbatim in the stored text scores exactly 1.
func lexicalSimilarity(query, stored []string) float32 {
	if len(stored) == 0 {
		return 0
	}

	var total float64
	for _, q := range query {
		var best float64
		for _, s := range stored {
			sim := smetrics.JaroWinkler(q, s, jaroWinklerBoostThreshold, jaroWinklerPrefixSize)
			if sim > best {
				best = sim
			}
			if best == 1 {
				break
			}
		}
		total += best
	}

	return float32(total / float64(len(query)))
}
