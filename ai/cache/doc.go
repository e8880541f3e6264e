// Package cache provides embedding caches that decorate an ai.Embedder.
//
// Two decorators are available: BadgerCache persists vectors in a BadgerDB
// key-value store so repeated runs over the same corpus skip the embedding
// service entirely, and LRU keeps a bounded in-memory cache for repeated
// queries within one process.
//
// Cache keys are content-derived, combining the embedder's vector space
// with a hash of the text, so switching models never serves stale vectors.
// Both decorators are themselves ai.Embedder implementations and can be
// stacked.
package cache
