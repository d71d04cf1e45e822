// Package ranking turns stored games into ordered leaderboard entries.
package ranking

import (
	"cmp"
	"slices"

	"github.com/okian/duelboard/internal/domain/model"
)

// Flatten emits one entry per occupied player slot of rec, player1 first.
func Flatten(rec model.GameRecord) []model.LeaderboardEntry {
	out := make([]model.LeaderboardEntry, 0, 2)
	out = append(out, entry(rec, model.SlotPlayer1, rec.Player1))
	if rec.Player2 != nil {
		out = append(out, entry(rec, model.SlotPlayer2, *rec.Player2))
	}
	return out
}

func entry(rec model.GameRecord, slot int, p model.PlayerResult) model.LeaderboardEntry {
	e := model.LeaderboardEntry{
		GameID:     rec.ID,
		PlayerName: p.Name,
		Score:      p.Score,
		Lines:      p.Lines,
		Mode:       rec.Mode,
		CreatedAt:  rec.CreatedAt,
		Slot:       slot,
	}
	if rec.Winner != nil {
		won := *rec.Winner == slot
		e.IsWinner = &won
	}
	return e
}

// Compare orders entries by score descending, then game id ascending,
// then slot ascending.
func Compare(a, b model.LeaderboardEntry) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(a.GameID, b.GameID); c != 0 {
		return c
	}
	return cmp.Compare(a.Slot, b.Slot)
}

// Top flattens records, ranks the entries and keeps the first limit of them.
// The result is never nil; limit < 1 yields an empty slice.
func Top(records []model.GameRecord, limit int) []model.LeaderboardEntry {
	if limit < 1 {
		return []model.LeaderboardEntry{}
	}

	entries := make([]model.LeaderboardEntry, 0, len(records)*2)
	for _, rec := range records {
		entries = append(entries, Flatten(rec)...)
	}
	slices.SortStableFunc(entries, Compare)

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
