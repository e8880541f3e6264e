// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package chunk

import (
	"iter"

	"github.com/poiesic/retrievit/core"
)

// Strategy produces the chunks of a document.
// Implementations must be safe for concurrent use.
type Strategy interface {
	// Chunks returns a lazy sequence of the document's chunks in document
	// order. The sequence is restartable: ranging over it again replays
	// the chunks from the beginning.
	Chunks(doc core.Document) iter.Seq[core.Chunk]
}

// windowStrategy groups segmented units into fixed-size overlapping windows.
type windowStrategy struct {
	segment func(string) []span
	size    int
	overlap int
}

// NewSentence creates a strategy that windows sentenceCount consecutive
// sentences, advancing by sentenceCount-overlap sentences per chunk so
// neighboring chunks share exactly overlap sentences.
func NewSentence(sentenceCount, overlap int) (Strategy, error) {
	if err := validateWindow(sentenceCount, overlap); err != nil {
		return nil, err
	}
	return &windowStrategy{segment: sentenceSpans, size: sentenceCount, overlap: overlap}, nil
}

// NewParagraph creates a strategy that windows paragraphs separated by
// blank lines, with the same overlap semantics as NewSentence.
func NewParagraph(paragraphCount, overlap int) (Strategy, error) {
	if err := validateWindow(paragraphCount, overlap); err != nil {
		return nil, err
	}
	return &windowStrategy{segment: paragraphSpans, size: paragraphCount, overlap: overlap}, nil
}

// NewWords creates a strategy that windows whitespace-separated words,
// with the same overlap semantics as NewSentence.
func NewWords(wordCount, overlap int) (Strategy, error) {
	if err := validateWindow(wordCount, overlap); err != nil {
		return nil, err
	}
	return &windowStrategy{segment: wordSpans, size: wordCount, overlap: overlap}, nil
}

// validateWindow rejects invalid window configurations before any document
// is processed. A zero-unit window produces nothing and an overlap reaching
// the window size would stall the window's advance.
func validateWindow(size, overlap int) error {
	if size < 1 {
		return ErrWindowSize
	}
	if overlap < 0 || overlap >= size {
		return ErrWindowOverlap
	}
	return nil
}

// Chunks implements Strategy. Each chunk covers the byte range from its
// first unit's start to its last unit's end, so chunk text is a verbatim
// substring of the document. The final window may hold fewer than size
// units; it is emitted rather than dropped.
func (s *windowStrategy) Chunks(doc core.Document) iter.Seq[core.Chunk] {
	return func(yield func(core.Chunk) bool) {
		spans := s.segment(doc.Contents)
		stride := s.size - s.overlap

		index := 0
		for first := 0; first < len(spans); first += stride {
			last := first + s.size
			if last > len(spans) {
				last = len(spans)
			}

			if !yield(core.NewChunk(doc, index, spans[first].start, spans[last-1].end)) {
				return
			}
			index++

			if last == len(spans) {
				return
			}
		}
	}
}
