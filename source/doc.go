// Package source supplies documents to the retrieval databases.
//
// A Source abstracts where documents come from; Folder reads them from a
// directory of text files and Slice adapts an in-memory list.
package source
