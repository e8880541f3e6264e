package cache

import "errors"

var (
	// ErrCacheSize indicates a non-positive LRU capacity.
	ErrCacheSize = errors.New("cache size must be positive")

	// ErrMalformedVector indicates a stored blob whose length is not a
	// whole number of float32 values.
	ErrMalformedVector = errors.New("malformed cached vector")
)
