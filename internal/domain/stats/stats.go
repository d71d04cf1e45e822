// Package stats computes summary statistics over stored games.
package stats

import (
	"math"
	"strconv"

	"github.com/okian/duelboard/internal/domain/model"
)

// Accumulator folds games into running totals. Every occupied player slot
// counts as one observation, so observations == games + twoPlayer.
// The zero value is ready to use.
type Accumulator struct {
	games     int
	twoPlayer int
	sumScore  int64
	sumLines  int64
	maxScore  int
}

// Add folds one game into the totals.
func (a *Accumulator) Add(rec model.GameRecord) {
	a.games++
	a.observe(rec.Player1)
	if rec.Mode == model.ModeTwoPlayer {
		a.twoPlayer++
	}
	if rec.Player2 != nil {
		a.observe(*rec.Player2)
	}
}

func (a *Accumulator) observe(p model.PlayerResult) {
	a.sumScore += int64(p.Score)
	a.sumLines += int64(p.Lines)
	if p.Score > a.maxScore {
		a.maxScore = p.Score
	}
}

// Observations returns the number of player slots seen so far.
func (a *Accumulator) Observations() int { return a.games + a.twoPlayer }

// Result returns the statistics for everything added so far.
func (a *Accumulator) Result() model.LeaderboardStats {
	out := model.LeaderboardStats{
		TotalGames:        a.games,
		Total1PGames:      a.games - a.twoPlayer,
		Total2PGames:      a.twoPlayer,
		HighestScore:      a.maxScore,
		TotalLinesCleared: a.sumLines,
	}
	if n := a.Observations(); n > 0 {
		out.AverageScore = Round2(float64(a.sumScore) / float64(n))
	}
	return out
}

// Aggregate computes statistics for records in one pass.
func Aggregate(records []model.GameRecord) model.LeaderboardStats {
	var acc Accumulator
	for _, rec := range records {
		acc.Add(rec)
	}
	return acc.Result()
}

// Round2 rounds x to two decimal places. The exact binary value of x is
// rounded, and exact ties go to the even digit.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	out, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	return out
}
