package seeder

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/duelboard/internal/domain/model"
)

const maxNameWidth = 24

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	winnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	rankCol   = lipgloss.NewStyle().Width(5).Align(lipgloss.Right)
	nameCol   = lipgloss.NewStyle().Width(maxNameWidth).Align(lipgloss.Left)
	numCol    = lipgloss.NewStyle().Width(8).Align(lipgloss.Right)
	modeCol   = lipgloss.NewStyle().Width(4).Align(lipgloss.Center)
	resultCol = lipgloss.NewStyle().Width(6).Align(lipgloss.Center)
	gameCol   = lipgloss.NewStyle().Width(8).Align(lipgloss.Right)
)

// RenderLeaderboard draws entries as a ranked table.
func RenderLeaderboard(title string, entries []model.LeaderboardEntry) string {
	head := titleStyle.Render(title)
	if len(entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, head, mutedStyle.Render("No leaderboard entries found"))
	}

	row := func(cells ...string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			rankCol.Render(cells[0]), "  ",
			nameCol.Render(cells[1]), "  ",
			numCol.Render(cells[2]), "  ",
			numCol.Render(cells[3]), "  ",
			modeCol.Render(cells[4]), "  ",
			resultCol.Render(cells[5]), "  ",
			gameCol.Render(cells[6]),
		)
	}

	rows := []string{
		head,
		headerStyle.Render(row("Rank", "Player", "Score", "Lines", "Mode", "Result", "Game")),
		mutedStyle.Render(strings.Repeat("─", 5+maxNameWidth+8+8+4+6+8+12)),
	}
	for i, e := range entries {
		line := row(
			fmt.Sprintf("#%d", i+1),
			truncate(e.PlayerName, maxNameWidth),
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Lines),
			string(e.Mode),
			result(e.IsWinner),
			fmt.Sprintf("%d", e.GameID),
		)
		if e.IsWinner != nil && *e.IsWinner {
			line = winnerStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderStats draws aggregate stats in a box.
func RenderStats(st model.LeaderboardStats) string {
	lines := []string{
		titleStyle.Render("Stats"),
		fmt.Sprintf("Games:          %d (1P %d, 2P %d)", st.TotalGames, st.Total1PGames, st.Total2PGames),
		fmt.Sprintf("Highest score:  %d", st.HighestScore),
		fmt.Sprintf("Average score:  %.2f", st.AverageScore),
		fmt.Sprintf("Lines cleared:  %d", st.TotalLinesCleared),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// RenderReport summarizes a seeding run.
func RenderReport(r Report) string {
	lines := []string{
		titleStyle.Render("Seeding run"),
		fmt.Sprintf("Generated:  %d", r.Generated),
		fmt.Sprintf("Submitted:  %d", r.Submitted),
		fmt.Sprintf("Accepted:   %d", r.Accepted),
		fmt.Sprintf("Rejected:   %d", r.Rejected),
		fmt.Sprintf("Failed:     %d", r.Failed),
		fmt.Sprintf("Duration:   %s (%.1f games/s)", r.Duration.Round(time.Millisecond), r.GamesPerSecond()),
		fmt.Sprintf("Total games %d -> %d", r.Before.TotalGames, r.After.TotalGames),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func result(isWinner *bool) string {
	switch {
	case isWinner == nil:
		return "-"
	case *isWinner:
		return "win"
	default:
		return "loss"
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
