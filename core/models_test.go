package core

import (
	"math"
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("greeting", "Hello, world!")

	if doc.Title != "greeting" {
		t.Errorf("NewDocument() Title = %q, want %q", doc.Title, "greeting")
	}
	if doc.Contents != "Hello, world!" {
		t.Errorf("NewDocument() Contents = %q, want %q", doc.Contents, "Hello, world!")
	}
	if doc.Id != IDFromContent("Hello, world!") {
		t.Errorf("NewDocument() Id should derive from contents")
	}

	// Title does not participate in identity
	other := NewDocument("salutation", "Hello, world!")
	if other.Id != doc.Id {
		t.Errorf("NewDocument() Id should be independent of title: %d vs %d", other.Id, doc.Id)
	}
}

func TestNewChunk(t *testing.T) {
	doc := NewDocument("test", "The cat sat. The dog ran.")

	chunk := NewChunk(doc, 0, 0, 12)

	if chunk.Text != "The cat sat." {
		t.Errorf("NewChunk() Text = %q, want %q", chunk.Text, "The cat sat.")
	}
	if chunk.Text != doc.Contents[chunk.Start:chunk.End] {
		t.Errorf("NewChunk() Text is not the verbatim substring of its document")
	}
	if chunk.DocumentId != doc.Id {
		t.Errorf("NewChunk() DocumentId = %d, want %d", chunk.DocumentId, doc.Id)
	}
	if chunk.Index != 0 {
		t.Errorf("NewChunk() Index = %d, want 0", chunk.Index)
	}

	// Same inputs produce the same chunk ID
	again := NewChunk(doc, 0, 0, 12)
	if again.Id != chunk.Id {
		t.Errorf("NewChunk() Id should be deterministic: %d vs %d", again.Id, chunk.Id)
	}

	// A different ordinal produces a different ID even for identical text
	shifted := NewChunk(doc, 1, 0, 12)
	if shifted.Id == chunk.Id {
		t.Errorf("NewChunk() Id should include the ordinal position")
	}
}

func TestVectorSpace(t *testing.T) {
	a := NewVectorSpace("embeddinggemma", 768)
	b := NewVectorSpace("embeddinggemma", 768)
	c := NewVectorSpace("text-embedding-3-small", 1536)

	if a != b {
		t.Errorf("identical spaces should compare equal")
	}
	if a == c {
		t.Errorf("different spaces should not compare equal")
	}
	if a.IsZero() {
		t.Errorf("constructed space should not be zero")
	}
	if !new(VectorSpace).IsZero() {
		t.Errorf("zero value space should report IsZero")
	}
	if a.Name() != "embeddinggemma" || a.Dimension() != 768 {
		t.Errorf("VectorSpace accessors returned %q/%d", a.Name(), a.Dimension())
	}
	if a.String() != "embeddinggemma/768" {
		t.Errorf("VectorSpace.String() = %q", a.String())
	}
}

func TestEmbedding_Normalize(t *testing.T) {
	space := NewVectorSpace("test", 3)

	t.Run("scales to unit length", func(t *testing.T) {
		emb := Embedding{Space: space, Values: []float32{3, 0, 4}}
		normalized := emb.Normalize()

		var sumSquares float64
		for _, v := range normalized.Values {
			sumSquares += float64(v) * float64(v)
		}
		if math.Abs(math.Sqrt(sumSquares)-1.0) > 1e-6 {
			t.Errorf("Normalize() magnitude = %f, want 1.0", math.Sqrt(sumSquares))
		}
		if normalized.Space != space {
			t.Errorf("Normalize() should preserve the space tag")
		}
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		emb := Embedding{Space: space, Values: []float32{0, 0, 0}}
		normalized := emb.Normalize()

		for i, v := range normalized.Values {
			if v != 0 {
				t.Errorf("Normalize() value[%d] = %f, want 0", i, v)
			}
		}
	})

	t.Run("empty vector unchanged", func(t *testing.T) {
		emb := Embedding{Space: space}
		normalized := emb.Normalize()

		if len(normalized.Values) != 0 {
			t.Errorf("Normalize() of empty vector should stay empty")
		}
	})

	t.Run("does not mutate the original", func(t *testing.T) {
		values := []float32{3, 0, 4}
		emb := Embedding{Space: space, Values: values}
		emb.Normalize()

		if values[0] != 3 || values[2] != 4 {
			t.Errorf("Normalize() mutated the input vector: %v", values)
		}
	})
}
