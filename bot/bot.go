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

package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lampstand/sermonrec/core"
	"github.com/lampstand/sermonrec/recommend"
	"github.com/lampstand/sermonrec/session"
)

const (
	// DefaultRecommendationCount is how many sermons a plain topic message
	// gets when the user does not name a number.
	DefaultRecommendationCount = 5

	// maxRecommendationCount caps a user-requested count.
	maxRecommendationCount = 20
)

// morePhrases are the literal pagination requests, matched case-insensitively.
var morePhrases = map[string]bool{
	"more":         true,
	"more sermons": true,
	"show more":    true,
}

// Bot routes incoming chat messages through the recommendation engine and
// writes results back via a Messenger.
type Bot struct {
	engine       *recommend.Engine
	responder    Responder
	messenger    Messenger
	defaultCount int
	logger       *slog.Logger
}

// Responder produces a short free-text reply to a user query, sent ahead of
// the sermon list. Satisfied by ai.Responder.
type Responder interface {
	Reply(ctx context.Context, query string) (string, error)
}

// Option configures a Bot.
type Option func(*Bot) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger.With("component", "bot")
		return nil
	}
}

// WithDefaultCount sets how many sermons a topic message gets by default.
func WithDefaultCount(n int) Option {
	return func(b *Bot) error {
		if n < 1 {
			n = DefaultRecommendationCount
		}
		b.defaultCount = n
		return nil
	}
}

// NewBot creates a bot over the given engine, responder and messenger.
func NewBot(engine *recommend.Engine, responder Responder, messenger Messenger, opts ...Option) (*Bot, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}
	if responder == nil {
		return nil, ErrResponderRequired
	}
	if messenger == nil {
		return nil, ErrMessengerRequired
	}

	b := &Bot{
		engine:       engine,
		responder:    responder,
		messenger:    messenger,
		defaultCount: DefaultRecommendationCount,
		logger:       slog.Default().With("component", "bot"),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// HandleMessage routes one incoming message. User-visible failures are
// reported back to the chat; the returned error covers transport failures
// only.
func (b *Bot) HandleMessage(ctx context.Context, msg Message) error {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "", text == "/start":
		return b.messenger.SendText(ctx, msg.ChatID, welcomeReply)

	case text == "/help":
		return b.messenger.SendText(ctx, msg.ChatID, helpReply)

	case strings.HasPrefix(text, "/recommend"):
		topic := strings.TrimSpace(strings.TrimPrefix(text, "/recommend"))
		return b.handleRecommend(ctx, msg, topic)

	case isMoreRequest(text):
		return b.handleMore(ctx, msg)

	default:
		return b.handleRecommend(ctx, msg, text)
	}
}

func (b *Bot) handleRecommend(ctx context.Context, msg Message, topic string) error {
	count := extractCount(topic, b.defaultCount)

	hits, err := b.engine.Recommend(ctx, msg.UserID, topic, count)
	switch {
	case errors.Is(err, recommend.ErrEmptyTopic):
		return b.messenger.SendText(ctx, msg.ChatID, askTopicReply)
	case errors.Is(err, recommend.ErrNoResults):
		return b.messenger.SendText(ctx, msg.ChatID, noResultsReply)
	case errors.Is(err, recommend.ErrNothingRelevant):
		return b.messenger.SendText(ctx, msg.ChatID, nothingRelevantReply)
	case err != nil:
		b.logger.Error("recommendation failed", "user", msg.UserID, "err", err)
		return b.messenger.SendText(ctx, msg.ChatID, troubleReply)
	}

	// The warm reply is a garnish; losing it must not lose the results.
	if reply, replyErr := b.responder.Reply(ctx, topic); replyErr != nil {
		b.logger.Warn("responder reply failed", "user", msg.UserID, "err", replyErr)
	} else if sendErr := b.messenger.SendText(ctx, msg.ChatID, reply); sendErr != nil {
		return sendErr
	}

	if err := b.sendHits(ctx, msg.ChatID, hits); err != nil {
		return err
	}

	if b.engine.Remaining(msg.UserID) > 0 {
		return b.messenger.SendText(ctx, msg.ChatID, moreHintReply)
	}
	return nil
}

func (b *Bot) handleMore(ctx context.Context, msg Message) error {
	page, err := b.engine.More(msg.UserID)
	switch {
	case errors.Is(err, session.ErrNoSession):
		return b.messenger.SendText(ctx, msg.ChatID, mustSearchReply)
	case errors.Is(err, session.ErrExhausted):
		return b.messenger.SendText(ctx, msg.ChatID, noMoreReply)
	case err != nil:
		b.logger.Error("pagination failed", "user", msg.UserID, "err", err)
		return b.messenger.SendText(ctx, msg.ChatID, troubleReply)
	}

	if err := b.sendHits(ctx, msg.ChatID, page); err != nil {
		return err
	}

	if b.engine.Remaining(msg.UserID) > 0 {
		return b.messenger.SendText(ctx, msg.ChatID, moreHintReply)
	}
	return nil
}

// sendHits delivers one message per sermon, as a photo when the sermon has
// an image and as text otherwise.
func (b *Bot) sendHits(ctx context.Context, chatID int64, hits []core.SearchHit) error {
	for _, hit := range hits {
		caption := formatSermon(hit.Sermon)

		var err error
		if hit.Sermon.ImageURL != "" {
			err = b.messenger.SendPhoto(ctx, chatID, hit.Sermon.ImageURL, caption)
		} else {
			err = b.messenger.SendText(ctx, chatID, caption)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// formatSermon renders one sermon as a chat message.
func formatSermon(s core.Sermon) string {
	var sb strings.Builder

	sb.WriteString("📖 ")
	sb.WriteString(s.Title)

	if s.Description != "" {
		sb.WriteString("\n\n")
		sb.WriteString(s.Description)
	}

	if s.Theme != "" {
		sb.WriteString("\n\n🏷 ")
		sb.WriteString(s.Theme)
	}
	if s.Date != "" {
		sb.WriteString("\n📅 ")
		sb.WriteString(s.Date)
	}

	sb.WriteString("\n🔗 ")
	sb.WriteString(s.MessageLink)
	return sb.String()
}

// isMoreRequest reports whether the text is a literal pagination phrase.
func isMoreRequest(text string) bool {
	return morePhrases[strings.ToLower(strings.TrimRight(strings.TrimSpace(text), " .!"))]
}

// extractCount pulls the first whole number out of the message, clamped to
// 1..20. Falls back to def when the message names no number.
func extractCount(text string, def int) int {
	for _, field := range strings.Fields(text) {
		n, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		if n < 1 {
			n = 1
		}
		if n > maxRecommendationCount {
			n = maxRecommendationCount
		}
		return n
	}
	return def
}
