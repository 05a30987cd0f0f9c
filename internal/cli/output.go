package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/Jeet1511/EliteZero/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.UserStats:
		o.printUserStats(v)
	case []response.Match:
		o.printMatches(v)
	case response.Leaderboard:
		o.printLeaderboard(v)
	case []response.Session:
		o.printSessions(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	case SimulationResult:
		o.printSimulation(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult is the health endpoint response
type HealthResult struct {
	Status string `json:"status"`
}

func table() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func (o *Output) printUserStats(u response.UserStats) {
	fmt.Printf("User:         %s\n", u.UserID)
	fmt.Printf("Games:        %d (%d W / %d L / %d D)\n", u.TotalGames, u.Wins, u.Losses, u.Draws)
	fmt.Printf("Win rate:     %.1f%%\n", u.WinRate)
	fmt.Printf("Points:       %d (+%d from achievements)\n", u.TotalPoints, u.AchievementPoints)
	fmt.Printf("Streak:       %d (best %d)\n", u.CurrentStreak, u.BestStreak)

	if len(u.Games) > 0 {
		names := make([]string, 0, len(u.Games))
		for name := range u.Games {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println()
		w := table()
		fmt.Fprintln(w, "GAME\tPLAYED\tWON\tLOST\tDRAW\tPOINTS")
		for _, name := range names {
			g := u.Games[name]
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n", name, g.Played, g.Won, g.Lost, g.Draw, g.Points)
		}
		_ = w.Flush()
	}

	if len(u.Achievements) > 0 {
		ids := make([]string, len(u.Achievements))
		for i, a := range u.Achievements {
			ids[i] = a.ID
		}
		fmt.Printf("\nAchievements: %s\n", strings.Join(ids, ", "))
	}
}

func (o *Output) printMatches(matches []response.Match) {
	if len(matches) == 0 {
		fmt.Println("No matches recorded")
		return
	}
	w := table()
	fmt.Fprintln(w, "ENDED\tGAME\tMODE\tWINNER\tREASON")
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.EndedAt.Format("2006-01-02 15:04"), m.GameType, m.Mode, m.Winner, m.EndReason)
	}
	_ = w.Flush()
}

func (o *Output) printLeaderboard(b response.Leaderboard) {
	title := "Overall"
	if b.Game != "" {
		title = b.Game
	}
	fmt.Printf("Leaderboard: %s\n\n", title)
	if len(b.Entries) == 0 {
		fmt.Println("No games played yet")
		return
	}
	w := table()
	fmt.Fprintf(w, "#\tUSER\t%s\tPLAYED\tWON\n", strings.ToUpper(b.ValueLabel))
	for _, e := range b.Entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n", e.Rank, e.UserID, e.Value, e.Played, e.Won)
	}
	_ = w.Flush()
}

func (o *Output) printSessions(sessions []response.Session) {
	if len(sessions) == 0 {
		fmt.Println("No sessions")
		return
	}
	w := table()
	fmt.Fprintln(w, "ID\tGAME\tMODE\tSTATE\tPLAYERS\tCREATED")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.GameType, s.Mode, s.State, strings.Join(s.Players, ","), s.CreatedAt.Format("15:04:05"))
	}
	_ = w.Flush()
}

func (o *Output) printSimulation(r SimulationResult) {
	fmt.Printf("%s at %s difficulty, %d games (seed %d)\n\n", r.Game, r.Difficulty, r.Games, r.Seed)
	fmt.Printf("Computer wins: %d\n", r.ComputerWins)
	fmt.Printf("Player wins:   %d\n", r.PlayerWins)
	fmt.Printf("Draws:         %d\n", r.Draws)
}
