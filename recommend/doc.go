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

// Package recommend implements the sermon recommendation pipeline.
//
// A recommendation runs in two stages. The Retriever embeds the user's
// topic and pulls the nearest sermons from the vector index; the Ranker
// then asks a language model to reorder those candidates by actual
// relevance. Model failures degrade gracefully: the ranker falls back to
// filtering the candidates by similarity score, so users still get results
// when the model is down.
//
// The Engine ties both stages to per-user sessions, serving a first page
// per query and paging through the remainder on demand. Successful model
// rankings are cached per user and query; fallback results are not, so the
// model gets another chance on the next request.
package recommend
