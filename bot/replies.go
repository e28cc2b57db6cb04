package bot

// Canned user-facing replies. The warm per-query response comes from the
// Responder model; these cover the fixed conversational states.
const (
	welcomeReply = "🙏 Welcome! I help you find sermons worth listening to.\n\n" +
		"Just tell me what is on your heart, for example \"faith in hard times\" " +
		"or \"healing\", and I will look through the archive for you.\n\n" +
		"Say \"more\" any time to see further recommendations."

	helpReply = "Here is what I can do:\n\n" +
		"• Send me any topic and I will recommend sermons on it\n" +
		"• /recommend <topic> [count] — ask for a specific number of sermons\n" +
		"• Say \"more\" to see the next recommendations for your last topic\n\n" +
		"Example: /recommend walking in faith 3"

	askTopicReply = "Please tell me a topic first, for example \"faith\" or \"prayer\" 🙏"

	noResultsReply = "I could not find any sermons in the archive yet. " +
		"Please try again a little later 🙏"

	nothingRelevantReply = "I looked through the archive but nothing felt truly " +
		"relevant to that topic. Maybe try different words? 🙏"

	mustSearchReply = "Tell me a topic first and I will find sermons for you 🙏"

	noMoreReply = "That is all I have on this topic for now. " +
		"Feel free to ask me about something else 🙏"

	moreHintReply = "Want more? Just say \"more\" 😊"

	troubleReply = "Something went wrong on my side. Please try again in a moment 🙏"
)
