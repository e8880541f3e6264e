// Package index provides the two in-memory retrieval indexes: a vector
// index ranking stored chunks by cosine similarity to a query embedding,
// and a fuzzy index ranking stored chunks by approximate lexical match.
//
// Both indexes grow monotonically and apply each insert as a single atomic
// step under a write lock, so queries running concurrently with inserts see
// either none or all of an entry, never a torn write. Queries may run
// concurrently with each other.
package index
