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


// Package storage provides the storage abstraction layer for sermonrec.
//
// Two concerns live behind interfaces here:
//
//   - SermonStore: the relational content store (titles, descriptions,
//     links, full-text search), implemented by storage/sqlite
//   - VectorIndex: the embedding index used for similarity search,
//     implemented by storage/badger
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction and keep
// backends swappable:
//
//	store, err := sqlite.Open(path)        // returns storage.SermonStore
//	index, err := badger.NewVectorIndex(b) // returns storage.VectorIndex
//
// # Serialization
//
// Vector index entries are persisted with a versioned binary format built on
// mus-go (see serialization.go). Deserialization failures are surfaced as
// ErrSerializationFailed or ErrUnsupportedVersion, never silently ignored.
//
// # Thread Safety
//
// All implementations must be safe for concurrent use from multiple
// goroutines.
//
// # Context Support
//
// All methods accept context.Context for cancellation and timeout support.
package storage
