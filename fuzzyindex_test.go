package retrievit

import (
	"context"
	"testing"

	"github.com/poiesic/retrievit/chunk"
	"github.com/poiesic/retrievit/core"
	"github.com/poiesic/retrievit/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzySearchIndex_TypoQueryFindsRightSentence(t *testing.T) {
	f, err := NewFuzzySearchIndex()
	require.NoError(t, err)

	doc := core.NewDocument("pets", "The cat sat on the mat. The dog ran in the park.")
	require.NoError(t, f.Extend(context.Background(), doc))
	require.Equal(t, 2, f.Len(), "default strategy chunks one sentence at a time")

	results := f.Search("caat", 2)

	require.Len(t, results, 2)
	assert.Equal(t, "The cat sat on the mat.", results[0].Chunk.Text)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestFuzzySearchIndex_WithStrategy(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		strategy, err := chunk.NewSentence(2, 0)
		require.NoError(t, err)

		f, err := NewFuzzySearchIndex(WithStrategy(strategy))
		require.NoError(t, err)

		doc := core.NewDocument("pets", "The cat sat. The dog ran. The bird flew.")
		require.NoError(t, f.Extend(context.Background(), doc))
		assert.Equal(t, 2, f.Len(), "two-sentence windows over three sentences")
	})

	t.Run("nil strategy rejected", func(t *testing.T) {
		_, err := NewFuzzySearchIndex(WithStrategy(nil))
		assert.ErrorIs(t, err, ErrStrategyRequired)
	})
}

func TestFuzzySearchIndex_SearchEmptyIndex(t *testing.T) {
	f, err := NewFuzzySearchIndex()
	require.NoError(t, err)

	assert.Empty(t, f.Search("anything", 5))
	assert.Empty(t, f.Search("anything", 0))
}

func TestFuzzySearchIndex_CancelledExtendKeepsPriorInserts(t *testing.T) {
	f, err := NewFuzzySearchIndex()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, f.Extend(ctx, core.NewDocument("first", "One sentence.")))
	cancel()

	err = f.Extend(ctx, core.NewDocument("second", "Another sentence."))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, f.Len(), "chunks inserted before cancellation remain")
}

func TestFuzzySearchIndex_ExtendSource(t *testing.T) {
	f, err := NewFuzzySearchIndex()
	require.NoError(t, err)

	src := source.Slice{
		core.NewDocument("a", "The cat sat."),
		core.NewDocument("b", "The dog ran."),
	}

	require.NoError(t, f.ExtendSource(context.Background(), src))
	assert.Equal(t, 2, f.Len())
}
