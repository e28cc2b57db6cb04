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

package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lampstand/sermonrec/ai"
)

// Each model-facing operation has exactly one accepted response shape.
// These parsers reject anything else so callers can tell a misbehaving
// model apart from a transport failure.

// parseRanking parses a model response that must be a JSON array of
// integers, e.g. "[3, 0, 7, 1]".
func parseRanking(response string) ([]int, error) {
	text := stripCodeFences(response)
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, fmt.Errorf("%w: expected JSON array, got %q", ai.ErrMalformedResponse, truncate(text, 100))
	}

	var indexes []int
	if err := json.Unmarshal([]byte(text), &indexes); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}
	return indexes, nil
}

// parseYesNo parses a model response that must be YES or NO.
func parseYesNo(response string) (bool, error) {
	answer := strings.ToUpper(strings.Trim(stripCodeFences(response), " \t\n.!\"'"))
	switch {
	case strings.HasPrefix(answer, "YES"):
		return true, nil
	case strings.HasPrefix(answer, "NO"):
		return false, nil
	}
	return false, fmt.Errorf("%w: expected YES or NO, got %q", ai.ErrMalformedResponse, truncate(response, 100))
}

// sermonMetadataJSON matches the JSON object the metadata prompt asks for.
type sermonMetadataJSON struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Theme       string `json:"theme"`
}

// parseMetadata parses a model response that must be a JSON object with
// title, description, and theme fields. Field lengths are clamped to the
// limits documented on ai.SermonMetadata.
func parseMetadata(response string) (*ai.SermonMetadata, error) {
	text := repairJSON(stripCodeFences(response))

	var parsed sermonMetadataJSON
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}
	if strings.TrimSpace(parsed.Title) == "" {
		return nil, fmt.Errorf("%w: metadata has no title", ai.ErrMalformedResponse)
	}

	return &ai.SermonMetadata{
		Title:       truncate(strings.TrimSpace(parsed.Title), 200),
		Description: truncate(strings.TrimSpace(parsed.Description), 1000),
		Theme:       truncate(strings.TrimSpace(parsed.Theme), 50),
	}, nil
}
