package ingest

import (
	"strings"

	"github.com/lampstand/sermonrec/ai"
)

// fallbackMetadata derives sermon metadata without the model: first line
// (or first sentence) as title, the opening of the text as description,
// and a keyword-guessed theme. Used when metadata extraction fails so a
// flaky model never blocks ingestion.
func fallbackMetadata(text string) *ai.SermonMetadata {
	title := "Untitled Sermon"

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		title = clamp(line, 200)
		break
	}

	flat := strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))

	// A very short first line is usually a greeting; prefer the first
	// sentence then.
	if len(title) < 20 && len(text) > 50 {
		if sentence, _, found := strings.Cut(flat, "."); found && strings.TrimSpace(sentence) != "" {
			title = clamp(strings.TrimSpace(sentence), 200)
		}
	}

	description := clamp(flat, 500)

	return &ai.SermonMetadata{
		Title:       title,
		Description: description,
		Theme:       guessTheme(text),
	}
}

// clamp cuts s to at most limit bytes on a rune boundary.
func clamp(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && s[limit]&0xC0 == 0x80 {
		limit--
	}
	return s[:limit]
}
