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
	"strings"
	"unicode"
	"unicode/utf8"
)

// span is a half-open byte range [start, end) into a document's contents.
type span struct {
	start int
	end   int
}

// isTerminator reports whether r can end a sentence.
func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

// isCloser reports whether r may trail a terminator and still belong to the
// sentence, such as a closing quote or bracket.
func isCloser(r rune) bool {
	return strings.ContainsRune(`"')]”’»`, r)
}

// sentenceSpans splits text into sentence byte ranges. A sentence runs from
// its first non-space rune through a run of terminators (plus any closing
// quotes or brackets) followed by whitespace or end of text. A terminator
// followed by other text does not split, so decimals like "3.5" stay intact.
// Text after the last terminator is emitted as a trailing sentence.
func sentenceSpans(text string) []span {
	var spans []span

	start := -1      // byte offset of the current sentence, -1 between sentences
	terminated := -1 // byte offset just past a pending terminator run, -1 when none

	for i, r := range text {
		switch {
		case start == -1:
			if !unicode.IsSpace(r) {
				start = i
			}

		case terminated >= 0:
			switch {
			case unicode.IsSpace(r):
				spans = append(spans, span{start, terminated})
				start = -1
				terminated = -1
			case isTerminator(r) || isCloser(r):
				terminated = i + utf8.RuneLen(r)
			default:
				terminated = -1
			}

		default:
			if isTerminator(r) {
				terminated = i + utf8.RuneLen(r)
			}
		}
	}

	if start != -1 {
		end := terminated
		if end < 0 {
			end = start + len(strings.TrimRightFunc(text[start:], unicode.IsSpace))
		}
		if end > start {
			spans = append(spans, span{start, end})
		}
	}

	return spans
}

// paragraphSpans splits text into paragraph byte ranges. Paragraphs are
// separated by one or more blank lines; a span covers the first through the
// last non-space byte of its lines, interior newlines included.
func paragraphSpans(text string) []span {
	var spans []span

	start := -1
	end := -1
	offset := 0

	for _, line := range strings.SplitAfter(text, "\n") {
		content := strings.TrimRightFunc(line, unicode.IsSpace)
		if content == "" {
			if start != -1 {
				spans = append(spans, span{start, end})
				start = -1
			}
		} else {
			if start == -1 {
				first := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsSpace(r) })
				start = offset + first
			}
			end = offset + len(content)
		}
		offset += len(line)
	}

	if start != -1 {
		spans = append(spans, span{start, end})
	}

	return spans
}

// wordSpans splits text into whitespace-separated word byte ranges.
func wordSpans(text string) []span {
	var spans []span

	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start != -1 {
				spans = append(spans, span{start, i})
				start = -1
			}
		} else if start == -1 {
			start = i
		}
	}

	if start != -1 {
		spans = append(spans, span{start, len(text)})
	}

	return spans
}
