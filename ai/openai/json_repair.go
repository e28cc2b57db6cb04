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

// repairJSON patches up malformed JSON the model sometimes emits for
// sermon metadata and ranking replies. The one defect seen in practice is
// a key missing its opening quote, as in `{theme": "Hope"}`; this scanner
// restores the quote and leaves everything else untouched.
func repairJSON(s string) string {
	result := []rune(s)
	fixed := make([]rune, 0, len(result)+100)

	i := 0
	for i < len(result) {
		ch := result[i]

		// A key can only start after { or , so everything else is copied
		// verbatim.
		if ch != '{' && ch != ',' {
			fixed = append(fixed, ch)
			i++
			continue
		}

		fixed = append(fixed, ch)
		i++
		for i < len(result) && (result[i] == ' ' || result[i] == '\n' || result[i] == '\t') {
			fixed = append(fixed, result[i])
			i++
		}

		if i >= len(result) || result[i] == '"' || !isLetter(result[i]) {
			continue
		}

		// Looks like a bare word where a key should be. Scan to its end and
		// decide whether a `":` follows, which marks a half-quoted key.
		keyStart := i
		for i < len(result) && (isLetter(result[i]) || result[i] == '_' || result[i] == ' ') {
			i++
		}
		keyEnd := i

		if i+1 < len(result) && result[i] == '"' && result[i+1] == ':' {
			fixed = append(fixed, '"')
			for j := keyStart; j < keyEnd; j++ {
				// Trim spaces at the edges of the recovered key name.
				if result[j] != ' ' || (j > keyStart && j < keyEnd-1) {
					fixed = append(fixed, result[j])
				}
			}
			// The closing quote is already in the input at result[i].
			continue
		}

		// Not a key after all; copy the scanned run unchanged.
		for j := keyStart; j < i; j++ {
			fixed = append(fixed, result[j])
		}
	}

	return string(fixed)
}
