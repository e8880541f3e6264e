package chunk

import "errors"

// Configuration errors raised at strategy construction
var (
	// ErrWindowSize indicates a window size smaller than one unit.
	ErrWindowSize = errors.New("chunk window must contain at least one unit")

	// ErrWindowOverlap indicates an overlap that would stall window progress.
	ErrWindowOverlap = errors.New("chunk overlap must be non-negative and smaller than the window")
)
