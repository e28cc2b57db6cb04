package bot

import "context"

// Messenger sends outgoing messages on some chat transport. The bot never
// talks to a transport directly; the binary wires a concrete client in.
type Messenger interface {
	// SendText delivers a plain text message to the chat.
	SendText(ctx context.Context, chatID int64, text string) error

	// SendPhoto delivers an image with a caption to the chat.
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) error
}

// Message is an incoming chat message.
type Message struct {
	ChatID int64
	UserID int64
	Text   string
}
