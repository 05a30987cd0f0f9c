package chatbot

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Jeet1511/EliteZero/internal/dependencies/clock"
	"github.com/Jeet1511/EliteZero/internal/dependencies/random"
	"github.com/Jeet1511/EliteZero/internal/model"
)

const (
	// ContextSize is the number of messages remembered per user
	ContextSize = 10
	// ContextTTL is how long an idle conversation is kept
	ContextTTL = time.Hour
	// AITimeout ends AI mode after this much inactivity
	AITimeout = 30 * time.Minute
)

// Message is one line of a remembered conversation
type Message struct {
	Content string
	FromBot bool
	At      time.Time
}

type conversation struct {
	messages []Message
	lastSeen time.Time
}

func (c *conversation) add(m Message) {
	c.messages = append(c.messages, m)
	if len(c.messages) > ContextSize {
		c.messages = slices.Clone(c.messages[len(c.messages)-ContextSize:])
	}
	c.lastSeen = m.At
}

// BotInterface defines the chat operations used by the adapters
type BotInterface interface {
	Reply(ctx context.Context, userID model.PlayerID, message string) (string, error)
	EnableAI(userID model.PlayerID) (bool, error)
	DisableAI(userID model.PlayerID) error
	InAIMode(userID model.PlayerID) bool
	History(userID model.PlayerID) []Message
	ClearOldContexts(ctx context.Context) int
	ExpireAI(ctx context.Context) int
}

// Bot answers free text with canned replies, or with the AI responder for
// users who switched AI mode on
type Bot struct {
	clock     clock.Clock
	random    random.Random
	responder Responder
	logger    *slog.Logger

	mu            sync.Mutex
	conversations map[model.PlayerID]*conversation
	// aiUsers maps a user in AI mode to their last AI activity
	aiUsers map[model.PlayerID]time.Time
}

var _ BotInterface = (*Bot)(nil)

// NewBot creates a chat bot. responder may be nil, which disables AI mode.
func NewBot(clk clock.Clock, rnd random.Random, responder Responder, logger *slog.Logger) *Bot {
	return &Bot{
		clock:         clk,
		random:        rnd,
		responder:     responder,
		logger:        logger.With(slog.String("component", "chatbot")),
		conversations: make(map[model.PlayerID]*conversation),
		aiUsers:       make(map[model.PlayerID]time.Time),
	}
}

// Reply records message in the user's context and answers it
func (b *Bot) Reply(ctx context.Context, userID model.PlayerID, message string) (string, error) {
	if userID == "" {
		return "", model.ErrMalformedAction
	}
	now := b.clock.Now()

	b.mu.Lock()
	conv := b.conversations[userID]
	if conv == nil {
		conv = &conversation{}
		b.conversations[userID] = conv
	}
	conv.add(Message{Content: message, At: now})
	_, ai := b.aiUsers[userID]
	if ai {
		b.aiUsers[userID] = now
	}
	history := slices.Clone(conv.messages)
	b.mu.Unlock()

	var reply string
	if ai && b.responder != nil {
		var err error
		reply, err = b.responder.Respond(ctx, history)
		if err != nil {
			b.logger.Warn("AI reply failed, using canned reply",
				slog.String("user_id", string(userID)),
				slog.String("error", err.Error()))
			reply = ""
		}
	}
	if reply == "" {
		group, responses := match(message)
		reply = responses[b.random.Intn(len(responses))]
		b.logger.Debug("canned reply", slog.String("user_id", string(userID)), slog.String("group", group))
	}

	b.mu.Lock()
	if conv := b.conversations[userID]; conv != nil {
		conv.add(Message{Content: reply, FromBot: true, At: b.clock.Now()})
	}
	b.mu.Unlock()
	return reply, nil
}

// EnableAI switches AI mode on. It reports whether it was already on.
func (b *Bot) EnableAI(userID model.PlayerID) (bool, error) {
	if b.responder == nil {
		return false, model.ErrAIUnavailable
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, already := b.aiUsers[userID]
	b.aiUsers[userID] = b.clock.Now()
	if !already {
		b.logger.Info("AI mode enabled", slog.String("user_id", string(userID)))
	}
	return already, nil
}

func (b *Bot) DisableAI(userID model.PlayerID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.aiUsers[userID]; !ok {
		return model.ErrAINotActive
	}
	delete(b.aiUsers, userID)
	b.logger.Info("AI mode disabled", slog.String("user_id", string(userID)))
	return nil
}

func (b *Bot) InAIMode(userID model.PlayerID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.aiUsers[userID]
	return ok
}

// History returns a copy of the user's remembered conversation
func (b *Bot) History(userID model.PlayerID) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	if conv := b.conversations[userID]; conv != nil {
		return slices.Clone(conv.messages)
	}
	return nil
}

// ClearOldContexts forgets conversations idle for longer than ContextTTL
func (b *Bot) ClearOldContexts(ctx context.Context) int {
	cutoff := b.clock.Now().Add(-ContextTTL)
	b.mu.Lock()
	defer b.mu.Unlock()
	cleared := 0
	for id, conv := range b.conversations {
		if conv.lastSeen.Before(cutoff) {
			delete(b.conversations, id)
			cleared++
		}
	}
	if cleared > 0 {
		b.logger.InfoContext(ctx, "cleared chat contexts", slog.Int("count", cleared))
	}
	return cleared
}

// ExpireAI switches AI mode off for users idle for longer than AITimeout
func (b *Bot) ExpireAI(ctx context.Context) int {
	cutoff := b.clock.Now().Add(-AITimeout)
	b.mu.Lock()
	defer b.mu.Unlock()
	expired := 0
	for id, last := range b.aiUsers {
		if last.Before(cutoff) {
			delete(b.aiUsers, id)
			expired++
		}
	}
	if expired > 0 {
		b.logger.InfoContext(ctx, "expired AI sessions", slog.Int("count", expired))
	}
	return expired
}
