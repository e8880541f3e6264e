package retrievit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/poiesic/retrievit/ai/mock"
	"github.com/poiesic/retrievit/chunk"
	"github.com/poiesic/retrievit/core"
	"github.com/poiesic/retrievit/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var petSpace = core.NewVectorSpace("pet-model", 2)

// petEmbedder maps text onto a two-dimensional space where one axis means
// "cat" and the other "dog", so ranking assertions are exact.
func petEmbedder() *mock.MockEmbedder {
	m := mock.NewMockEmbedder(petSpace)
	m.EmbedTextFunc = func(ctx context.Context, text string) (core.Embedding, error) {
		lower := strings.ToLower(text)
		values := []float32{0.1, 0.1}
		if strings.Contains(lower, "cat") {
			values[0] = 1
		}
		if strings.Contains(lower, "dog") {
			values[1] = 1
		}
		return core.Embedding{Space: petSpace, Values: values}, nil
	}
	return m
}

func sentenceStrategy(t *testing.T) chunk.Strategy {
	t.Helper()
	strategy, err := chunk.NewSentence(1, 0)
	require.NoError(t, err)
	return strategy
}

func TestNew_InvalidConstruction(t *testing.T) {
	strategy := sentenceStrategy(t)

	_, err := New(nil, strategy)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = New(petEmbedder(), nil)
	assert.ErrorIs(t, err, ErrStrategyRequired)

	_, err = New(mock.NewMockEmbedder(core.VectorSpace{}), strategy)
	assert.ErrorIs(t, err, core.ErrVectorSpaceRequired)
}

func TestDocumentDatabase_ExtendAndSearch(t *testing.T) {
	db, err := New(petEmbedder(), sentenceStrategy(t))
	require.NoError(t, err)
	defer db.Close()

	doc := core.NewDocument("pets", "The cat sat on the mat. The dog ran in the park.")
	require.NoError(t, db.Extend(context.Background(), doc))
	require.Equal(t, 2, db.Len(), "one chunk per sentence")

	results, err := db.Search(context.Background(), "cat", 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "The cat sat on the mat.", results[0].Chunk.Text)
	assert.Equal(t, "The dog ran in the park.", results[1].Chunk.Text)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestDocumentDatabase_EmbeddingFailureKeepsPriorInserts(t *testing.T) {
	failure := errors.New("rate limited")

	embedder := mock.NewMockEmbedder(petSpace)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) (core.Embedding, error) {
		if strings.Contains(text, "dog") {
			return core.Embedding{}, failure
		}
		return core.Embedding{Space: petSpace, Values: []float32{1, 0}}, nil
	}

	db, err := New(embedder, sentenceStrategy(t))
	require.NoError(t, err)
	defer db.Close()

	doc := core.NewDocument("pets", "The cat sat on the mat. The dog ran in the park.")
	err = db.Extend(context.Background(), doc)

	assert.ErrorIs(t, err, failure, "the capability's error surfaces unmodified")
	assert.Equal(t, 1, db.Len(), "the chunk embedded before the failure stays indexed")
}

func TestDocumentDatabase_ExtendManyDocumentsInParallel(t *testing.T) {
	db, err := New(petEmbedder(), sentenceStrategy(t), WithPoolSize(4))
	require.NoError(t, err)
	defer db.Close()

	docs := make([]core.Document, 20)
	for i := range docs {
		docs[i] = core.NewDocument(
			fmt.Sprintf("doc-%d", i),
			fmt.Sprintf("Sentence one of %d. Sentence two of %d.", i, i),
		)
	}

	require.NoError(t, db.Extend(context.Background(), docs...))
	assert.Equal(t, 40, db.Len())
}

func TestDocumentDatabase_SearchZeroK(t *testing.T) {
	embedder := petEmbedder()
	db, err := New(embedder, sentenceStrategy(t))
	require.NoError(t, err)
	defer db.Close()

	results, err := db.Search(context.Background(), "cat", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, embedder.CallCount(), "k = 0 short-circuits before embedding")
}

func TestDocumentDatabase_SearchEmptyIndex(t *testing.T) {
	db, err := New(petEmbedder(), sentenceStrategy(t))
	require.NoError(t, err)
	defer db.Close()

	results, err := db.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results, "empty index yields an empty result, not an error")
}

func TestDocumentDatabase_CancelledExtendKeepsPriorInserts(t *testing.T) {
	db, err := New(petEmbedder(), sentenceStrategy(t))
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = db.Extend(ctx, core.NewDocument("pets", "The cat sat."))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, db.Len())
}

func TestDocumentDatabase_ExtendSource(t *testing.T) {
	db, err := New(petEmbedder(), sentenceStrategy(t))
	require.NoError(t, err)
	defer db.Close()

	src := source.Slice{
		core.NewDocument("a", "The cat sat."),
		core.NewDocument("b", "The dog ran."),
	}

	require.NoError(t, db.ExtendSource(context.Background(), src))
	assert.Equal(t, 2, db.Len())
}

func TestDocumentDatabase_ExtendAfterClose(t *testing.T) {
	db, err := New(petEmbedder(), sentenceStrategy(t))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	err = db.Extend(context.Background(), core.NewDocument("pets", "The cat sat."))
	assert.Error(t, err, "the released pool rejects new work")
}

func TestWithLogger_NilFallsBackToDefault(t *testing.T) {
	db, err := New(petEmbedder(), sentenceStrategy(t), WithLogger(nil))
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, db.logger)
}
