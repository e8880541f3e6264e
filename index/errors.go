package index

import "errors"

var (
	// ErrSpaceMismatch indicates an embedding tagged with a different
	// vector space than the index stores.
	ErrSpaceMismatch = errors.New("embedding belongs to a different vector space")
)
