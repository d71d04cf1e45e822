package seeder

import (
	"fmt"

	"github.com/okian/duelboard/internal/domain/model"
)

// VerifyOrdering checks entries are ranked by score descending, then by
// game id ascending.
func VerifyOrdering(entries []model.LeaderboardEntry) error {
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.Score > prev.Score {
			return fmt.Errorf("%w: entry %d scores %d above entry %d at %d",
				ErrVerification, i, cur.Score, i-1, prev.Score)
		}
		if cur.Score == prev.Score && cur.GameID < prev.GameID {
			return fmt.Errorf("%w: tied entries %d and %d out of game id order",
				ErrVerification, i-1, i)
		}
	}
	return nil
}

// VerifyLimit checks no more than limit entries came back.
func VerifyLimit(entries []model.LeaderboardEntry, limit int) error {
	if len(entries) > limit {
		return fmt.Errorf("%w: got %d entries for limit %d", ErrVerification, len(entries), limit)
	}
	return nil
}

// VerifyTotals checks the stored game count grew by exactly accepted.
// Concurrent writers other than this run make the check fail.
func VerifyTotals(before, after model.LeaderboardStats, accepted int) error {
	if grew := after.TotalGames - before.TotalGames; grew != accepted {
		return fmt.Errorf("%w: total_games grew by %d, expected %d", ErrVerification, grew, accepted)
	}
	if after.TotalGames != after.Total1PGames+after.Total2PGames {
		return fmt.Errorf("%w: total_games %d != 1P %d + 2P %d",
			ErrVerification, after.TotalGames, after.Total1PGames, after.Total2PGames)
	}
	if after.HighestScore < before.HighestScore {
		return fmt.Errorf("%w: highest_score dropped from %d to %d",
			ErrVerification, before.HighestScore, after.HighestScore)
	}
	return nil
}
