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


// Package ai defines the embedding capability consumed by the retrieval
// indexes.
//
// The core interface is Embedder: a thread-safe service turning text into
// vector embeddings tagged with one fixed vector space per instance. The
// retrieval layer depends only on this abstraction, so any backend that can
// produce fixed-length vectors plugs in.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles with injectable behavior
//   - ai/cache: decorators adding persistent or in-memory embedding caches
//
// Production constructors return the Embedder interface to enforce
// abstraction; mock constructors return concrete types so tests can reach
// assertion helpers such as CallCount.
//
// Cross-cutting policy also lives capability-side: WithRetry decorates any
// Embedder with exponential-backoff retries, keeping retry decisions out of
// the indexes entirely.
package ai
