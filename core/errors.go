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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyContents indicates the Contents field is empty.
	ErrEmptyContents = errors.New("contents cannot be empty")

	// ErrInvalidEmbedding indicates an Embedding failed validation.
	ErrInvalidEmbedding = errors.New("invalid embedding")

	// ErrEmptyVector indicates an embedding has no values.
	ErrEmptyVector = errors.New("embedding vector cannot be empty")

	// ErrVectorSpaceRequired indicates an embedding carries no vector space tag.
	ErrVectorSpaceRequired = errors.New("vector space required")

	// ErrDimensionMismatch indicates a vector's length differs from its space's dimension.
	ErrDimensionMismatch = errors.New("vector length does not match space dimension")
)
