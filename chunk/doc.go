// Package chunk splits documents into overlapping windows of text for indexing.
//
// A Strategy turns a document into a lazy sequence of chunks. Strategies are
// window-based: the document is segmented into units (sentences, paragraphs,
// or words) and consecutive units are grouped into windows that advance by
// size-overlap units each step, so neighboring chunks share exactly overlap
// units. The final window is emitted even when the document ends before
// filling it.
//
// Chunk text is always a verbatim substring of the source document, so the
// byte offsets carried by each chunk map straight back to the input.
package chunk
