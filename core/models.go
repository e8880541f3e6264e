package core

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// VectorSpace identifies the output space of an embedding model.
// Embeddings are only comparable within a single space: every embedder
// declares the one space it produces, and indexes reject vectors tagged
// with any other. Spaces compare with ==.
type VectorSpace struct {
	name      string
	dimension int
}

// NewVectorSpace creates a vector space identity with the given name and
// dimension. The name is typically the embedding model identifier.
func NewVectorSpace(name string, dimension int) VectorSpace {
	return VectorSpace{name: name, dimension: dimension}
}

// Name returns the space's identifying name.
func (s VectorSpace) Name() string {
	return s.name
}

// Dimension returns the fixed vector length for embeddings in this space.
func (s VectorSpace) Dimension() int {
	return s.dimension
}

// IsZero reports whether the space is the zero identity.
func (s VectorSpace) IsZero() bool {
	return s == VectorSpace{}
}

// String returns "name/dimension" for logging.
func (s VectorSpace) String() string {
	return fmt.Sprintf("%s/%d", s.name, s.dimension)
}

// Document represents one input text unit.
// Contents are treated as immutable once the document has been chunked.
type Document struct {
	Id       ID
	Title    string
	Contents string
}

// NewDocument creates a document with an ID derived from its contents.
// Identical contents always produce the same document ID.
func NewDocument(title, contents string) Document {
	return Document{
		Id:       IDFromContent(contents),
		Title:    title,
		Contents: contents,
	}
}

// Chunk is a contiguous slice of a document, the atomic unit indexed and
// retrieved. Text is always the verbatim substring Contents[Start:End] of
// the owning document.
type Chunk struct {
	Id         ID
	DocumentId ID
	Index      int // ordinal position within the document, 0 first
	Start      int // byte offset of the chunk's first unit in the document
	End        int // byte offset just past the chunk's last unit
	Text       string
}

// NewChunk creates the chunk covering doc.Contents[start:end] at the given
// ordinal position. The chunk ID is derived from the owning document, the
// ordinal, and the covered text.
func NewChunk(doc Document, index, start, end int) Chunk {
	text := doc.Contents[start:end]
	return Chunk{
		Id:         IDFromContent(fmt.Sprintf("%d:%d:%s", uint64(doc.Id), index, text)),
		DocumentId: doc.Id,
		Index:      index,
		Start:      start,
		End:        end,
		Text:       text,
	}
}

// Embedding is a dense vector representation of a chunk or query, tagged
// with the space it was produced in. Two embeddings are only comparable
// when their spaces are equal.
type Embedding struct {
	Space  VectorSpace
	Values []float32
}

// Normalize returns a copy of the embedding scaled to unit length.
// A zero vector normalizes to a zero vector.
func (e Embedding) Normalize() Embedding {
	if len(e.Values) == 0 {
		return e
	}

	var magnitude float32
	for _, val := range e.Values {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	values := make([]float32, len(e.Values))
	if magnitude == 0 {
		return Embedding{Space: e.Space, Values: values}
	}

	for i, val := range e.Values {
		values[i] = val / magnitude
	}
	return Embedding{Space: e.Space, Values: values}
}

// SearchResult represents a ranked hit from a search, with the matched
// chunk and its relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float32
	Rank  int // position in the result sequence, 0 first
}
