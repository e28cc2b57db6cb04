package openai

import (
	"fmt"
	"strings"

	"github.com/lampstand/sermonrec/ai"
)

const rankingPromptTemplate = `You are helping recommend sermons from a pastor's teaching archive.

User query: "%s"

Available sermons:
%s

Task: Return a JSON array of sermon indexes (0-%d) ranked by relevance to the query.
Only include sermons that are truly relevant (relevance score >= 0.7).
Return ONLY the JSON array, nothing else.

Example: [3, 0, 7, 1]`

// buildRankingPrompt formats the ranking prompt for the given query and
// candidate summaries. Descriptions are truncated so a single long sermon
// cannot crowd the others out of the context window.
func buildRankingPrompt(query string, summaries []ai.SermonSummary) string {
	lines := make([]string, len(summaries))
	for i, s := range summaries {
		lines[i] = fmt.Sprintf("%d. %s\n%s...", i, s.Title,
			truncate(s.Description, ai.SummaryDescriptionLimit))
	}
	return fmt.Sprintf(rankingPromptTemplate, query, strings.Join(lines, "\n"), len(summaries)-1)
}

const classificationPromptTemplate = `Is this a sermon/teaching message from a pastor? Answer only YES or NO.

Message: "%s..."`

// classifierSampleLimit caps how much message text is sent for
// classification. The opening of a post is enough to tell a teaching from
// an announcement.
const classifierSampleLimit = 400

func buildClassificationPrompt(text string) string {
	return fmt.Sprintf(classificationPromptTemplate, truncate(text, classifierSampleLimit))
}

const metadataPromptTemplate = `Extract metadata from this sermon message:

Message: "%s"

Return a JSON object with:
- "title": A clear, concise title (5-15 words max)
- "description": A full description of the sermon content (30-200 words)
- "theme": Main theme/topic (1-3 words like "Faith", "Healing", "Purpose")

Return ONLY the JSON object, nothing else.

Example:
{"title": "Walking in Faith During Difficult Times", "description": "A teaching about maintaining faith when facing challenges...", "theme": "Faith"}`

// metadataSampleLimit caps how much message text is sent for metadata
// extraction.
const metadataSampleLimit = 2000

func buildMetadataPrompt(text string) string {
	return fmt.Sprintf(metadataPromptTemplate, truncate(text, metadataSampleLimit))
}

const replyPromptTemplate = `You are a pastor's AI assistant, helping people with spiritual guidance.

User message: "%s"

Task: Respond with warmth and pastoral care:
1. Acknowledge their message with love and empathy
2. Share ONE relevant Bible verse (book chapter:verse format)
3. Give brief encouragement with emojis (📖 🙏 🔥 ✨ 💖)

Keep it SHORT (3-4 sentences max). Be warm, natural, and uplifting.
DO NOT mention sermon recommendations - those will be sent separately.

Example tone:
"I hear your heart, beloved! 🙏 Remember, *'Be strong and courageous. Do not be afraid; do not be discouraged, for the Lord your God will be with you wherever you go.'* - Joshua 1:9 📖 God is with you in this season, and His word will guide you! ✨"`

func buildReplyPrompt(query string) string {
	return fmt.Sprintf(replyPromptTemplate, query)
}
