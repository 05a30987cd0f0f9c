// Package discord connects the game and chat services to Discord: slash
// commands, button clicks and channel messages in, embeds and buttons out.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/chatbot"
	"github.com/Jeet1511/EliteZero/internal/services/play"
	"github.com/Jeet1511/EliteZero/internal/services/session"
	"github.com/Jeet1511/EliteZero/internal/services/stats"
)

const (
	requestTimeout = 10 * time.Second
	chatTimeout    = 45 * time.Second
)

// Config holds the Discord connection settings
type Config struct {
	Token string
	// GuildID registers commands in one guild only; empty registers them
	// globally
	GuildID string
}

// Deps are the services the bot drives
type Deps struct {
	Play     play.ControllerInterface
	Sessions session.StoreInterface
	Stats    stats.EngineInterface
	Chat     chatbot.BotInterface
}

type commandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate)

// Bot is the Discord front end
type Bot struct {
	session  *discordgo.Session
	guildID  string
	play     play.ControllerInterface
	sessions session.StoreInterface
	stats    stats.EngineInterface
	chat     chatbot.BotInterface
	logger   *slog.Logger

	handlers   map[string]commandHandler
	registered []*discordgo.ApplicationCommand
}

// Ensure Bot can receive pushed renders
var _ play.Notifier = (*Bot)(nil)

// New creates a bot. Call Start to connect.
func New(cfg Config, deps Deps, logger *slog.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("discord token is required")
	}
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	b := &Bot{
		session:  s,
		guildID:  cfg.GuildID,
		play:     deps.Play,
		sessions: deps.Sessions,
		stats:    deps.Stats,
		chat:     deps.Chat,
		logger:   logger.With(slog.String("component", "discord")),
	}
	b.handlers = map[string]commandHandler{
		"game":         b.handleGame,
		"gamestats":    b.handleGameStats,
		"leaderboard":  b.handleLeaderboard,
		"achievements": b.handleAchievements,
		"chat":         b.handleChat,
		"zero":         b.handleZero,
		"stop":         b.handleStop,
		"quit":         b.handleQuit,
	}
	return b, nil
}

// Start opens the gateway connection and registers the slash commands
func (b *Bot) Start() error {
	b.session.AddHandler(b.interactionHandler)
	b.session.AddHandler(b.messageHandler)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	appID := b.session.State.User.ID
	for _, cmd := range Commands() {
		registered, err := b.session.ApplicationCommandCreate(appID, b.guildID, cmd)
		if err != nil {
			return fmt.Errorf("register command %q: %w", cmd.Name, err)
		}
		b.registered = append(b.registered, registered)
	}

	b.logger.Info("discord bot connected",
		slog.String("user", b.session.State.User.Username),
		slog.Int("commands", len(b.registered)),
	)
	return nil
}

// Stop removes guild commands and closes the connection
func (b *Bot) Stop() error {
	if b.guildID != "" {
		for _, cmd := range b.registered {
			if err := b.session.ApplicationCommandDelete(b.session.State.User.ID, b.guildID, cmd.ID); err != nil {
				b.logger.Warn("failed to remove command", slog.String("command", cmd.Name), slog.String("error", err.Error()))
			}
		}
	}
	return b.session.Close()
}

func (b *Bot) interactionHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if handler, ok := b.handlers[name]; ok {
			handler(s, i)
		}
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	}
}

// handleComponent routes a button click to its session
func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	action, err := ParseCustomID(i.MessageComponentData().CustomID, interactionUser(i))
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	renders, err := b.play.HandleAction(ctx, action)
	if err != nil {
		b.respondError(s, i, err)
		return
	}
	b.respondRenders(s, i, renders, true)
}

// messageHandler sends game input to the author's running session and
// everything else addressed to the bot to the chatbot
func (b *Bot) messageHandler(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	user := model.PlayerID(m.Author.ID)
	ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
	defer cancel()

	if _, err := b.sessions.UserSession(ctx, user); err == nil {
		renders, err := b.play.SubmitText(ctx, user, m.ChannelID, m.Content)
		switch {
		case err == nil:
			b.deliver(m.ChannelID, renders)
			return
		case errors.Is(err, model.ErrUnexpectedAction), errors.Is(err, model.ErrNotPlayerTurn), errors.Is(err, model.ErrGameNotActive):
			// not game input; treat it as chat
		default:
			b.reply(s, m, errorEmbed(err))
			return
		}
	}

	mentioned := false
	for _, u := range m.Mentions {
		if s.State != nil && s.State.User != nil && u.ID == s.State.User.ID {
			mentioned = true
			break
		}
	}
	aiMode := b.chat.InAIMode(user)
	if !mentioned && !aiMode {
		return
	}

	text := stripMentions(m.Content)
	if text == "" {
		b.reply(s, m, chatEmbed("Hey there! 👋 How can I help you today? Try /game to play something.", aiMode))
		return
	}

	_ = s.ChannelTyping(m.ChannelID)
	reply, err := b.chat.Reply(ctx, user, text)
	if err != nil {
		b.reply(s, m, errorEmbed(err))
		return
	}
	b.reply(s, m, chatEmbed(reply, b.chat.InAIMode(user)))
}

func (b *Bot) reply(s *discordgo.Session, m *discordgo.MessageCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:    []*discordgo.MessageEmbed{embed},
		Reference: m.Reference(),
	}); err != nil {
		b.logger.Error("failed to reply", slog.String("channel_id", m.ChannelID), slog.String("error", err.Error()))
	}
}

// Notify delivers renders produced by timers and computer moves to the
// session's channel
func (b *Bot) Notify(ctx context.Context, renders []model.RenderInstruction) {
	if len(renders) == 0 {
		return
	}
	sess, err := b.sessions.GetSession(ctx, renders[0].SessionID)
	if err != nil || sess.ChannelID == "" {
		b.logger.Warn("no channel for pushed renders", slog.String("session_id", string(renders[0].SessionID)))
		return
	}
	go b.deliver(sess.ChannelID, renders)
}

// deliver sends renders in order, honoring their pacing delay. Renders for
// one recipient go to that player's DMs.
func (b *Bot) deliver(channelID string, renders []model.RenderInstruction) {
	for _, r := range renders {
		if r.Delay > 0 {
			time.Sleep(r.Delay)
		}
		target := channelID
		if r.Recipient != "" && !r.Recipient.IsComputer() {
			dm, err := b.session.UserChannelCreate(string(r.Recipient))
			if err != nil {
				b.logger.Error("failed to open DM", slog.String("user_id", string(r.Recipient)), slog.String("error", err.Error()))
				continue
			}
			target = dm.ID
		}
		if _, err := b.session.ChannelMessageSendComplex(target, renderMessage(r)); err != nil {
			b.logger.Error("failed to send render",
				slog.String("session_id", string(r.SessionID)),
				slog.String("channel_id", target),
				slog.String("error", err.Error()),
			)
		}
	}
}

// respondRenders answers an interaction with the first render and sends
// the rest as follow-up messages. update edits the clicked message in place.
func (b *Bot) respondRenders(s *discordgo.Session, i *discordgo.InteractionCreate, renders []model.RenderInstruction, update bool) {
	if len(renders) == 0 {
		typ := discordgo.InteractionResponseDeferredMessageUpdate
		if !update {
			typ = discordgo.InteractionResponseDeferredChannelMessageWithSource
		}
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{Type: typ}); err != nil {
			b.logger.Error("failed to acknowledge interaction", slog.String("error", err.Error()))
		}
		return
	}

	first, rest := renders[0], renders[1:]
	if first.Recipient != "" && first.Recipient != interactionUser(i) {
		// the first render is addressed to someone else
		first, rest = model.RenderInstruction{SessionID: first.SessionID, Text: "✅ Done!"}, renders
		update = false
	}

	msg := renderMessage(first)
	data := &discordgo.InteractionResponseData{
		Content:    msg.Content,
		Embeds:     msg.Embeds,
		Components: msg.Components,
	}
	typ := discordgo.InteractionResponseChannelMessageWithSource
	switch {
	case update:
		typ = discordgo.InteractionResponseUpdateMessage
	case first.Recipient != "":
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{Type: typ, Data: data}); err != nil {
		b.logger.Error("failed to respond to interaction",
			slog.String("session_id", string(first.SessionID)),
			slog.String("error", err.Error()),
		)
	}
	if len(rest) > 0 {
		go b.deliver(i.ChannelID, rest)
	}
}

func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		b.logger.Error("failed to respond to interaction", slog.String("error", err.Error()))
	}
}

// respondError shows err to the requesting user only
func (b *Bot) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	if errors.Is(err, model.ErrInternal) || userMessage(err) == unknownError {
		b.logger.Error("request failed", slog.String("user_id", string(interactionUser(i))), slog.String("error", err.Error()))
	}
	b.respondEmbed(s, i, errorEmbed(err), true)
}

func (b *Bot) editEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embeds ...*discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Embeds: &embeds}); err != nil {
		b.logger.Error("failed to edit interaction response", slog.String("error", err.Error()))
	}
}
