package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/poiesic/retrievit/ai"
	"github.com/poiesic/retrievit/core"
)

// LRU is a bounded in-memory embedding cache decorating an ai.Embedder.
// Least recently used vectors are evicted once maxEntries is reached.
type LRU struct {
	inner ai.Embedder
	cache *lru.Cache[core.ID, []float32]
}

// NewLRU wraps embedder with an in-memory cache holding at most maxEntries
// vectors.
func NewLRU(embedder ai.Embedder, maxEntries int) (*LRU, error) {
	if embedder == nil {
		return nil, ai.ErrEmbedderRequired
	}
	if maxEntries <= 0 {
		return nil, ErrCacheSize
	}

	cache, err := lru.New[core.ID, []float32](maxEntries)
	if err != nil {
		return nil, err
	}

	return &LRU{inner: embedder, cache: cache}, nil
}

// Space returns the inner embedder's vector space.
func (l *LRU) Space() core.VectorSpace {
	return l.inner.Space()
}

// Len returns the number of currently cached vectors.
func (l *LRU) Len() int {
	return l.cache.Len()
}

// EmbedText returns the cached vector for text when present, otherwise
// delegates to the inner embedder and stores the result.
func (l *LRU) EmbedText(ctx context.Context, text string) (core.Embedding, error) {
	key := core.IDFromContent(text)

	if values, ok := l.cache.Get(key); ok {
		return core.Embedding{Space: l.inner.Space(), Values: copyVector(values)}, nil
	}

	emb, err := l.inner.EmbedText(ctx, text)
	if err != nil {
		return core.Embedding{}, err
	}

	l.cache.Add(key, copyVector(emb.Values))
	return emb, nil
}

// EmbedTexts serves each text from the cache where possible and batches
// the remaining misses through the inner embedder.
func (l *LRU) EmbedTexts(ctx context.Context, texts []string) ([]core.Embedding, error) {
	space := l.inner.Space()
	embs := make([]core.Embedding, len(texts))

	var missed []string
	var missedAt []int
	for i, text := range texts {
		if values, ok := l.cache.Get(core.IDFromContent(text)); ok {
			embs[i] = core.Embedding{Space: space, Values: copyVector(values)}
			continue
		}
		missed = append(missed, text)
		missedAt = append(missedAt, i)
	}

	if len(missed) == 0 {
		return embs, nil
	}

	fresh, err := l.inner.EmbedTexts(ctx, missed)
	if err != nil {
		return nil, err
	}

	for j, emb := range fresh {
		l.cache.Add(core.IDFromContent(missed[j]), copyVector(emb.Values))
		embs[missedAt[j]] = emb
	}
	return embs, nil
}

// copyVector returns a fresh copy so cached values and caller-held values
// can never alias each other.
func copyVector(values []float32) []float32 {
	out := make([]float32, len(values))
	copy(out, values)
	return out
}
