package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/play"
	"github.com/Jeet1511/EliteZero/internal/services/stats"
)

func gameChoices() []*discordgo.ApplicationCommandOptionChoice {
	games := model.AllGameTypes()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(games))
	for i, g := range games {
		info := g.Info()
		choices[i] = &discordgo.ApplicationCommandOptionChoice{Name: info.Icon + " " + info.Name, Value: string(g)}
	}
	return choices
}

func gameOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "game",
		Description: "Which game",
		Required:    required,
		Choices:     gameChoices(),
	}
}

func userOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: description,
	}
}

// Commands returns the slash command definitions
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "game",
			Description: "Start a mini-game",
			Options: []*discordgo.ApplicationCommandOption{
				gameOption(true),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "mode",
					Description: "Solo, against the computer or against another player",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Solo", Value: string(model.ModeSolo)},
						{Name: "vs Computer", Value: string(model.ModeComputer)},
						{Name: "Multiplayer", Value: string(model.ModeMultiplayer)},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "difficulty",
					Description: "Computer strength and puzzle size (default: hard)",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Easy", Value: string(model.DifficultyEasy)},
						{Name: "Hard", Value: string(model.DifficultyHard)},
						{Name: "Impossible", Value: string(model.DifficultyImpossible)},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "opponent",
					Description: "Who to challenge in multiplayer mode",
				},
			},
		},
		{
			Name:        "gamestats",
			Description: "Show game stats",
			Options:     []*discordgo.ApplicationCommandOption{userOption("Whose stats (default: you)"), gameOption(false)},
		},
		{
			Name:        "leaderboard",
			Description: "Show the leaderboard",
			Options:     []*discordgo.ApplicationCommandOption{gameOption(false)},
		},
		{
			Name:        "achievements",
			Description: "Show achievements",
			Options:     []*discordgo.ApplicationCommandOption{userOption("Whose achievements (default: you)")},
		},
		{
			Name:        "chat",
			Description: "Chat with EliteZero",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "What to say",
					Required:    true,
				},
			},
		},
		{
			Name:        "zero",
			Description: "Turn on AI chat mode",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "Optional first message",
				},
			},
		},
		{Name: "stop", Description: "Turn off AI chat mode"},
		{Name: "quit", Description: "Leave your current game"},
	}
}

// options indexes command options by name
type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func commandOptions(i *discordgo.InteractionCreate) options {
	opts := make(options)
	for _, o := range i.ApplicationCommandData().Options {
		opts[o.Name] = o
	}
	return opts
}

func (o options) str(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// userID returns the id of a user option, or fallback when absent
func (o options) userID(name string, fallback model.PlayerID) model.PlayerID {
	if opt, ok := o[name]; ok {
		if id, ok := opt.Value.(string); ok && id != "" {
			return model.PlayerID(id)
		}
	}
	return fallback
}

// interactionUser returns who triggered the interaction in guilds and DMs
func interactionUser(i *discordgo.InteractionCreate) model.PlayerID {
	if i.Member != nil && i.Member.User != nil {
		return model.PlayerID(i.Member.User.ID)
	}
	if i.User != nil {
		return model.PlayerID(i.User.ID)
	}
	return ""
}

// startRequest builds a play request from /game options
func startRequest(opts options, host model.PlayerID, channelID string) (play.StartRequest, error) {
	game, err := model.ParseGameType(opts.str("game"))
	if err != nil {
		return play.StartRequest{}, err
	}
	mode, err := model.ParseMode(opts.str("mode"))
	if err != nil {
		return play.StartRequest{}, err
	}
	difficulty, err := model.ParseDifficulty(opts.str("difficulty"))
	if err != nil {
		return play.StartRequest{}, err
	}
	req := play.StartRequest{
		GameType:   game,
		HostID:     host,
		Mode:       mode,
		Difficulty: difficulty,
		ChannelID:  channelID,
	}
	if mode == model.ModeMultiplayer {
		req.OpponentID = opts.userID("opponent", "")
		if req.OpponentID == "" {
			return play.StartRequest{}, fmt.Errorf("%w: choose an opponent to play multiplayer", model.ErrMalformedAction)
		}
	}
	return req, nil
}

func (b *Bot) handleGame(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	req, err := startRequest(commandOptions(i), user, i.ChannelID)
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	sess, renders, err := b.play.StartGame(ctx, req)
	if err != nil {
		b.respondError(s, i, err)
		return
	}
	b.logger.Info("game started from discord",
		slog.String("session_id", string(sess.ID)),
		slog.String("user_id", string(user)),
	)
	b.respondRenders(s, i, renders, false)
}

func (b *Bot) handleGameStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commandOptions(i)
	target := opts.userID("user", interactionUser(i))

	var game model.GameType
	if raw := opts.str("game"); raw != "" {
		g, err := model.ParseGameType(raw)
		if err != nil {
			b.respondError(s, i, err)
			return
		}
		game = g
	}

	u, err := b.stats.GetStats(target)
	if err != nil {
		b.respondError(s, i, err)
		return
	}
	b.respondEmbed(s, i, statsEmbed(u, game), false)
}

func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	raw := commandOptions(i).str("game")
	if raw == "" {
		b.respondEmbed(s, i, leaderboardEmbed("Overall leaderboard", "Points", b.stats.OverallLeaderboard(stats.DefaultLeaderboardSize)), false)
		return
	}

	game, err := model.ParseGameType(raw)
	if err != nil {
		b.respondError(s, i, err)
		return
	}
	entries, err := b.stats.Leaderboard(game, stats.DefaultLeaderboardSize)
	if err != nil {
		b.respondError(s, i, err)
		return
	}
	info := game.Info()
	b.respondEmbed(s, i, leaderboardEmbed(info.Name+" leaderboard", stats.ValueLabel(game), entries), false)
}

func (b *Bot) handleAchievements(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := commandOptions(i).userID("user", interactionUser(i))
	u, err := b.stats.GetStats(target)
	if err != nil && !errors.Is(err, model.ErrStatsNotFound) {
		b.respondError(s, i, err)
		return
	}
	b.respondEmbed(s, i, achievementsEmbed(target, b.stats.Achievements(), u), false)
}

func (b *Bot) handleChat(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	message := commandOptions(i).str("message")

	// AI replies may be slow
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		b.logger.Error("failed to acknowledge interaction", slog.String("error", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
	defer cancel()
	reply, err := b.chat.Reply(ctx, user, message)
	embed := chatEmbed(reply, b.chat.InAIMode(user))
	if err != nil {
		embed = errorEmbed(err)
	}
	b.editEmbed(s, i, embed)
}

func (b *Bot) handleZero(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	already, err := b.chat.EnableAI(user)
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🧠 AI mode activated",
		Description: "Your messages will now be answered by the AI, and I'll remember our conversation.\nUse /stop to return to normal mode.",
		Color:       colorAIMode,
	}
	if already {
		embed.Title = "🧠 AI mode already active"
	}

	message := commandOptions(i).str("message")
	if message == "" {
		b.respondEmbed(s, i, embed, false)
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		b.logger.Error("failed to acknowledge interaction", slog.String("error", err.Error()))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
	defer cancel()
	reply, err := b.chat.Reply(ctx, user, message)
	if err != nil {
		b.editEmbed(s, i, errorEmbed(err))
		return
	}
	b.editEmbed(s, i, embed, chatEmbed(reply, true))
}

func (b *Bot) handleStop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := b.chat.DisableAI(interactionUser(i)); err != nil {
		b.respondError(s, i, err)
		return
	}
	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "👋 AI mode deactivated",
		Description: "Back to normal mode. Mention me any time to chat.",
		Color:       colorInfo,
	}, false)
}

func (b *Bot) handleQuit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	sess, err := b.sessions.UserSession(ctx, user)
	if err != nil {
		b.respondError(s, i, err)
		return
	}
	renders, err := b.play.Quit(ctx, sess.ID, user)
	if err != nil {
		b.respondError(s, i, err)
		return
	}
	b.respondRenders(s, i, renders, false)
}
