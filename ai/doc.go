// Copyright 2025 Lampstand Labs
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

// Package ai provides abstractions for the AI services used in sermonrec.
//
// This package defines interfaces for text embeddings, relevance ranking,
// teaching classification, metadata extraction, and reply generation. The
// retrieval and ingestion layers depend on these abstractions rather than
// on a concrete model client.
//
// # Design Principles
//
// The package is designed around five service interfaces plus an
// aggregating Provider:
//
//   - Embedder: generates vector embeddings from text
//   - Ranker: orders candidate sermons by relevance to a query
//   - TeachingClassifier: filters teachings from other channel posts
//   - MetadataExtractor: derives title/description/theme from raw text
//   - Responder: writes the short pastoral reply sent with results
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockRanker, etc.)
// return CONCRETE types so tests can inject behavior via function fields and
// assert on call counts.
//
//	mockRank := mock.NewMockRanker()
//	mockRank.RankSermonsFunc = func(...) ([]int, error) { return []int{1, 0}, nil }
//	count := mockRank.CallCount()
//
// # Strict Response Parsing
//
// Each model-facing operation has a fixed response shape (a JSON int array
// for ranking, YES/NO for classification, a JSON object for metadata).
// Implementations parse strictly against that shape and surface
// ErrMalformedResponse on any deviation, so callers can distinguish "the
// model misbehaved" from transport failures and apply their fallbacks
// deliberately.
package ai
