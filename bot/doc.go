// Package bot is the conversational front-end over the recommendation
// engine. It understands /start, /help, /recommend and free-text topic
// messages, pages results with the literal "more" phrases, and delivers
// sermons through a transport-agnostic Messenger.
package bot
