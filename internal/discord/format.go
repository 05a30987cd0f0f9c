package discord

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// Embed colors
const (
	colorGame    = 0x5865F2
	colorFinal   = 0x57F287
	colorInfo    = 0x00D9FF
	colorError   = 0xFF0000
	colorAIMode  = 0xB24BF3
	maxRowSize   = 5
	maxRows      = 5
	footerText   = "EliteZero • /game to play, /zero for AI chat"
	unknownError = "Something went wrong. Please try again."
)

var mentionPattern = regexp.MustCompile(`<@!?\d+>`)

// stripMentions removes user mentions from a chat message
func stripMentions(s string) string {
	return strings.TrimSpace(mentionPattern.ReplaceAllString(s, ""))
}

// renderEmbed turns a render instruction into a message embed
func renderEmbed(r model.RenderInstruction) *discordgo.MessageEmbed {
	desc := r.Text
	if len(r.Board) > 0 {
		desc += "\n```\n" + strings.Join(r.Board, "\n") + "\n```"
	}
	color := colorGame
	if r.Final {
		color = colorFinal
	}
	return &discordgo.MessageEmbed{
		Title:       r.Title,
		Description: desc,
		Color:       color,
	}
}

var buttonStyles = map[model.ControlStyle]discordgo.ButtonStyle{
	model.StylePrimary:   discordgo.PrimaryButton,
	model.StyleSecondary: discordgo.SecondaryButton,
	model.StyleSuccess:   discordgo.SuccessButton,
	model.StyleDanger:    discordgo.DangerButton,
}

// renderComponents lays controls out as button rows. Rows longer than
// Discord allows are wrapped; anything past the row limit is dropped.
func renderComponents(r model.RenderInstruction) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for _, controls := range r.Controls {
		for start := 0; start < len(controls); start += maxRowSize {
			end := min(start+maxRowSize, len(controls))
			row := discordgo.ActionsRow{}
			for _, c := range controls[start:end] {
				style, ok := buttonStyles[c.Style]
				if !ok {
					style = discordgo.SecondaryButton
				}
				row.Components = append(row.Components, discordgo.Button{
					Label:    c.Label,
					Style:    style,
					CustomID: CustomID(r.SessionID, c.Kind, c.Value),
					Disabled: c.Disabled || r.Final,
				})
			}
			if len(rows) == maxRows {
				return rows
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// renderMessage builds a channel message for a render
func renderMessage(r model.RenderInstruction) *discordgo.MessageSend {
	msg := &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{renderEmbed(r)},
		Components: renderComponents(r),
	}
	if r.Recipient != "" && !r.Recipient.IsComputer() {
		msg.Content = r.Recipient.Mention()
	}
	return msg
}

// userMessage is the ephemeral text shown for a failed request
func userMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrAlreadyInGame):
		return "🎮 You're already in a game! Finish it or use /quit first."
	case errors.Is(err, model.ErrSessionNotFound):
		return "❓ That game doesn't exist anymore."
	case errors.Is(err, model.ErrGameNotActive):
		return "⌛ This game has already ended."
	case errors.Is(err, model.ErrNotParticipant):
		return "🚫 You're not playing in this game."
	case errors.Is(err, model.ErrNotPlayerTurn):
		return "⏳ It's not your turn!"
	case errors.Is(err, model.ErrUnsupportedMode):
		return "🚫 That mode isn't available for this game."
	case errors.Is(err, model.ErrUnknownGameType):
		return "❓ I don't know that game."
	case errors.Is(err, model.ErrStatsNotFound):
		return "📊 No stats yet. Play a game with /game first!"
	case errors.Is(err, model.ErrAIUnavailable):
		return "🤖 AI mode is not configured on this bot."
	case errors.Is(err, model.ErrAINotActive):
		return "ℹ️ AI mode is not active. Use /zero to turn it on."
	case errors.Is(err, model.ErrDuplicatePlayer):
		return "🙃 You can't play against yourself."
	case errors.Is(err, model.ErrInvalidAction):
		return "⚠️ " + err.Error()
	}
	return unknownError
}

func errorEmbed(err error) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: "Oops", Description: userMessage(err), Color: colorError}
}

// statsEmbed shows a user's record. With a game it shows that game only.
func statsEmbed(u *model.UserStats, game model.GameType) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Color:  colorInfo,
		Footer: &discordgo.MessageEmbedFooter{Text: footerText},
	}

	if game != "" {
		info := game.Info()
		gs := u.Game(game)
		embed.Title = fmt.Sprintf("%s %s stats", info.Icon, info.Name)
		embed.Description = fmt.Sprintf("%s\nPlayed **%d** • Won **%d** • Lost **%d** • Draw **%d** • Points **%d**",
			u.UserID.Mention(), gs.Played, gs.Won, gs.Lost, gs.Draw, gs.Points)
		var bests []string
		if gs.BestScore > 0 {
			bests = append(bests, fmt.Sprintf("Best score: **%d**", gs.BestScore))
		}
		if gs.BestAttempts > 0 {
			bests = append(bests, fmt.Sprintf("Best attempts: **%d** (avg %.1f)", gs.BestAttempts, gs.AvgAttempts))
		}
		if gs.BestMoves > 0 {
			bests = append(bests, fmt.Sprintf("Fewest moves: **%d**", gs.BestMoves))
		}
		if gs.BestTimeMs > 0 {
			bests = append(bests, fmt.Sprintf("Best time: **%dms** (avg %.0fms)", gs.BestTimeMs, gs.AvgTimeMs))
		}
		if len(bests) > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Personal bests", Value: strings.Join(bests, "\n")})
		}
		return embed
	}

	embed.Title = "📊 Game stats"
	embed.Description = u.UserID.Mention()
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Games", Value: fmt.Sprintf("%d played • %d W / %d L / %d D", u.TotalGames, u.Wins, u.Losses, u.Draws), Inline: true},
		{Name: "Win rate", Value: fmt.Sprintf("%.1f%%", u.WinRate()), Inline: true},
		{Name: "Points", Value: fmt.Sprintf("%d (+%d from achievements)", u.TotalPoints, u.AchievementPoints), Inline: true},
		{Name: "Streak", Value: fmt.Sprintf("%d current • %d best", u.CurrentStreak, u.BestStreak), Inline: true},
	}
	var lines []string
	for _, g := range model.AllGameTypes() {
		gs := u.Game(g)
		if gs.Played == 0 {
			continue
		}
		info := g.Info()
		lines = append(lines, fmt.Sprintf("%s %s: %d played, %d won, %d pts", info.Icon, info.Name, gs.Played, gs.Won, gs.Points))
	}
	if len(lines) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "By game", Value: strings.Join(lines, "\n")})
	}
	return embed
}

var medals = []string{"🥇", "🥈", "🥉"}

// leaderboardEmbed ranks entries under title
func leaderboardEmbed(title, valueLabel string, entries []model.LeaderboardEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  "🏆 " + title,
		Color:  colorInfo,
		Footer: &discordgo.MessageEmbedFooter{Text: footerText},
	}
	if len(entries) == 0 {
		embed.Description = "No games played yet. Be the first!"
		return embed
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		rank := fmt.Sprintf("**#%d**", e.Rank)
		if e.Rank <= len(medals) {
			rank = medals[e.Rank-1]
		}
		lines[i] = fmt.Sprintf("%s %s: %s **%d**", rank, e.UserID.Mention(), valueLabel, e.Value)
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}

// achievementsEmbed lists every achievement, marking the ones u holds.
// u may be nil for a user with no record.
func achievementsEmbed(userID model.PlayerID, defs []model.Achievement, u *model.UserStats) *discordgo.MessageEmbed {
	unlocked := 0
	lines := make([]string, len(defs))
	for i, a := range defs {
		mark := "🔒"
		if u != nil && u.HasAchievement(a.ID) {
			mark = "✅"
			unlocked++
		}
		lines[i] = fmt.Sprintf("%s %s **%s** (%d pts): %s", mark, a.Icon, a.Name, a.Points, a.Description)
	}
	return &discordgo.MessageEmbed{
		Title:       "🎖️ Achievements",
		Description: fmt.Sprintf("%s has unlocked **%d/%d**\n\n%s", userID.Mention(), unlocked, len(defs), strings.Join(lines, "\n")),
		Color:       colorInfo,
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}
}

// chatEmbed wraps a chatbot reply
func chatEmbed(reply string, aiMode bool) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🤖 EliteZero",
		Description: reply,
		Color:       colorInfo,
		Footer:      &discordgo.MessageEmbedFooter{Text: "EliteZero • Use /zero for advanced AI"},
	}
	if aiMode {
		embed.Color = colorAIMode
		embed.Footer.Text = "EliteZero AI mode • /stop to return to normal"
	}
	return embed
}
