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


package core

import "fmt"

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//
// NOT validated:
//   - Title (optional display metadata, may be empty)
//   - ID (0 is a legitimate hash value)
func ValidateDocument(doc Document) error {
	if doc.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContents)
	}
	return nil
}

// ValidateEmbedding validates an Embedding according to domain rules.
//
// Validation rules:
//   - Space must be a non-zero identity
//   - Values must not be empty
//   - Values length must equal the space's dimension
func ValidateEmbedding(emb Embedding) error {
	if emb.Space.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidEmbedding, ErrVectorSpaceRequired)
	}

	if len(emb.Values) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEmbedding, ErrEmptyVector)
	}

	if len(emb.Values) != emb.Space.Dimension() {
		return fmt.Errorf("%w: %w: space %s has %d values",
			ErrInvalidEmbedding, ErrDimensionMismatch, emb.Space, len(emb.Values))
	}

	return nil
}
