package ai

// MaxRankCandidates caps how many sermon summaries are presented to the
// ranking model in a single call.
const MaxRankCandidates = 15

// SummaryDescriptionLimit caps how much of a sermon description is shown
// to the ranking model per candidate.
const SummaryDescriptionLimit = 200

// SermonSummary is the condensed view of a candidate sermon handed to the
// ranking model. The index a ranker returns refers to the summary's position
// in the slice it was given.
type SermonSummary struct {
	Title       string
	Description string
}

// SermonMetadata is the structured metadata a MetadataExtractor derives
// from raw message text.
type SermonMetadata struct {
	// Title is a concise title, at most 200 characters.
	Title string

	// Description summarizes the sermon content, at most 1000 characters.
	Description string

	// Theme is the main topic in 1-3 words, e.g. "Faith" or "Healing".
	Theme string
}
