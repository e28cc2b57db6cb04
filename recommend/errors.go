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

package recommend

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrModelRankerRequired is returned when an AI ranker is not provided.
	ErrModelRankerRequired = errors.New("AI ranker required")

	// ErrCacheRequired is returned when a cache store is not provided.
	ErrCacheRequired = errors.New("cache store required")

	// ErrRetrieverRequired is returned when a retriever is not provided.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrRankerRequired is returned when a ranker is not provided.
	ErrRankerRequired = errors.New("ranker required")

	// ErrSessionsRequired is returned when a session manager is not provided.
	ErrSessionsRequired = errors.New("session manager required")

	// ErrEmptyTopic is returned when a recommendation is requested for an
	// empty topic.
	ErrEmptyTopic = errors.New("topic must not be empty")

	// ErrNoResults is returned when retrieval finds no candidates at all.
	ErrNoResults = errors.New("no sermons found")

	// ErrNothingRelevant is returned when retrieval found candidates but
	// ranking kept none of them.
	ErrNothingRelevant = errors.New("no relevant sermons found")
)
