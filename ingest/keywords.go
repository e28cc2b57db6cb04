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

package ingest

import "strings"

// minTeachingLength is the minimum text length for a post to qualify as a
// teaching. Shorter posts are announcements or reactions.
const minTeachingLength = 100

// teachingKeywords are the terms that indicate a post is a teaching.
var teachingKeywords = []string{
	"message", "sermon", "teaching", "word", "scripture",
	"bible", "god", "jesus", "pastor", "ministry", "anointing",
	"faith", "prayer", "worship", "spirit", "church", "kingdom",
	"testimony", "revelation", "prophetic", "glory", "grace",
}

// likelyTeaching is the cheap prefilter run before the classifier model:
// the text must be long enough and mention at least two teaching keywords.
func likelyTeaching(text string) bool {
	if len(text) < minTeachingLength {
		return false
	}

	lower := strings.ToLower(text)
	count := 0
	for _, keyword := range teachingKeywords {
		if strings.Contains(lower, keyword) {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// themeKeywords maps text markers to fallback theme labels, checked in
// order.
var themeKeywords = []struct {
	marker string
	theme  string
}{
	{"faith", "Faith"},
	{"healing", "Healing"},
	{"prosperity", "Prosperity"},
	{"purpose", "Purpose"},
	{"prayer", "Prayer"},
	{"worship", "Worship"},
	{"family", "Family"},
	{"business", "Business"},
	{"breakthrough", "Breakthrough"},
	{"deliverance", "Deliverance"},
	{"grace", "Grace"},
	{"love", "Love"},
	{"power", "Power"},
	{"supernatural", "Supernatural"},
}

// guessTheme picks a theme label from keyword markers in the text.
func guessTheme(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range themeKeywords {
		if strings.Contains(lower, entry.marker) {
			return entry.theme
		}
	}
	return "General"
}
