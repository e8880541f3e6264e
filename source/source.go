package source

import (
	"context"

	"github.com/poiesic/retrievit/core"
)

// Source supplies a collection of documents to index. How the documents
// are obtained (filesystem, network, generated) is the source's concern;
// consumers only see the resulting documents.
type Source interface {
	// Documents returns the source's documents. Order must be stable
	// across calls for an unchanged underlying collection.
	Documents(ctx context.Context) ([]core.Document, error)
}

// Slice is an in-memory Source over an already-loaded document list.
type Slice []core.Document

// Documents implements Source.
func (s Slice) Documents(ctx context.Context) ([]core.Document, error) {
	return s, nil
}
