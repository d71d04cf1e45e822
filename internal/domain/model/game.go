// Package model contains domain models passed between layers.
package model

import "time"

// Mode identifies how many players took part in a game.
type Mode string

// Recognized game modes. No other values are valid.
const (
	ModeSinglePlayer Mode = "1P"
	ModeTwoPlayer    Mode = "2P"
)

// ParseMode converts a raw string into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeSinglePlayer, ModeTwoPlayer:
		return Mode(s), true
	}
	return "", false
}

// ModeFilter selects which records a leaderboard query reads.
type ModeFilter string

// Recognized filters.
const (
	FilterSinglePlayer ModeFilter = "1P"
	FilterTwoPlayer    ModeFilter = "2P"
	FilterAll          ModeFilter = "all"
)

// ParseModeFilter converts a raw query value into a ModeFilter.
// An empty value means FilterAll.
func ParseModeFilter(s string) (ModeFilter, bool) {
	switch ModeFilter(s) {
	case "", FilterAll:
		return FilterAll, true
	case FilterSinglePlayer, FilterTwoPlayer:
		return ModeFilter(s), true
	}
	return "", false
}

// Matches reports whether a record of mode m passes the filter.
func (f ModeFilter) Matches(m Mode) bool {
	return f == FilterAll || Mode(f) == m
}

// Winner slot numbers.
const (
	SlotPlayer1 = 1
	SlotPlayer2 = 2
)

// PlayerResult is one player's final line in a game.
type PlayerResult struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Lines int    `json:"lines"`
}

// GameRecord is one completed game as stored.
// Player2 is set iff Mode is ModeTwoPlayer; Winner is nil for single
// player games and ties.
type GameRecord struct {
	ID        int64         `json:"id"`
	Mode      Mode          `json:"mode"`
	Player1   PlayerResult  `json:"player1"`
	Player2   *PlayerResult `json:"player2"`
	Winner    *int          `json:"winner"`
	CreatedAt time.Time     `json:"created_at"`
}

// CheckInvariant verifies the mode/player shape of a record.
func (g GameRecord) CheckInvariant() error {
	var v []Violation
	switch g.Mode {
	case ModeSinglePlayer:
		if g.Player2 != nil {
			v = append(v, Violation{Field: "player2", Rule: "must be absent for 1P games"})
		}
		if g.Winner != nil {
			v = append(v, Violation{Field: "winner", Rule: "must be absent for 1P games"})
		}
	case ModeTwoPlayer:
		if g.Player2 == nil {
			v = append(v, Violation{Field: "player2", Rule: "is required for 2P games"})
		}
		if g.Winner != nil && *g.Winner != SlotPlayer1 && *g.Winner != SlotPlayer2 {
			v = append(v, Violation{Field: "winner", Rule: "must be 1 or 2"})
		}
	default:
		v = append(v, Violation{Field: "mode", Rule: "must be one of 1P, 2P"})
	}
	if len(v) > 0 {
		return &ValidationError{Violations: v}
	}
	return nil
}

// NewGame is an unvalidated game submission.
type NewGame struct {
	Mode    string        `json:"mode"`
	Player1 *PlayerResult `json:"player1"`
	Player2 *PlayerResult `json:"player2"`
	Winner  *int          `json:"winner"`
}

// LeaderboardEntry is one player slot of a game, ranked for display.
type LeaderboardEntry struct {
	GameID     int64     `json:"game_id"`
	PlayerName string    `json:"player_name"`
	Score      int       `json:"score"`
	Lines      int       `json:"lines"`
	Mode       Mode      `json:"mode"`
	IsWinner   *bool     `json:"is_winner"`
	CreatedAt  time.Time `json:"created_at"`

	// Slot is 1 or 2; used for ordering only.
	Slot int `json:"-"`
}

// LeaderboardStats summarizes every stored game.
type LeaderboardStats struct {
	TotalGames        int     `json:"total_games"`
	Total1PGames      int     `json:"total_1p_games"`
	Total2PGames      int     `json:"total_2p_games"`
	HighestScore      int     `json:"highest_score"`
	AverageScore      float64 `json:"average_score"`
	TotalLinesCleared int64   `json:"total_lines_cleared"`
}
