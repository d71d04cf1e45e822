// Package validation checks game submissions before they reach the store.
package validation

import (
	"unicode/utf8"

	"github.com/okian/duelboard/internal/domain/model"
)

// Player name bounds, counted in code points.
const (
	MinNameLength = 1
	MaxNameLength = 100
)

// Validate checks every submission rule and converts g into a record
// ready for insertion. All violations are reported together in a single
// *model.ValidationError. ID and CreatedAt are left for the store to assign.
func Validate(g model.NewGame) (model.GameRecord, error) {
	var v []model.Violation

	mode, ok := model.ParseMode(g.Mode)
	if !ok {
		v = append(v, model.Violation{Field: "mode", Rule: "must be one of 1P, 2P"})
	}

	if g.Player1 == nil {
		v = append(v, model.Violation{Field: "player1", Rule: "is required"})
	} else {
		v = append(v, checkPlayer("player1", *g.Player1)...)
	}

	switch mode {
	case model.ModeTwoPlayer:
		if g.Player2 == nil {
			v = append(v, model.Violation{Field: "player2", Rule: "is required for 2P games"})
		} else {
			v = append(v, checkPlayer("player2", *g.Player2)...)
		}
		if g.Winner != nil && *g.Winner != model.SlotPlayer1 && *g.Winner != model.SlotPlayer2 {
			v = append(v, model.Violation{Field: "winner", Rule: "must be 1 or 2"})
		}
	case model.ModeSinglePlayer:
		if g.Player2 != nil {
			v = append(v, model.Violation{Field: "player2", Rule: "must be absent for 1P games"})
		}
		if g.Winner != nil {
			v = append(v, model.Violation{Field: "winner", Rule: "must be absent for 1P games"})
		}
	}

	if len(v) > 0 {
		return model.GameRecord{}, &model.ValidationError{Violations: v}
	}

	rec := model.GameRecord{Mode: mode, Player1: *g.Player1}
	if g.Player2 != nil {
		p2 := *g.Player2
		rec.Player2 = &p2
	}
	if g.Winner != nil {
		w := *g.Winner
		rec.Winner = &w
	}
	return rec, nil
}

func checkPlayer(field string, p model.PlayerResult) []model.Violation {
	var v []model.Violation
	n := utf8.RuneCountInString(p.Name)
	if n < MinNameLength || n > MaxNameLength {
		v = append(v, model.Violation{Field: field + ".name", Rule: "length must be between 1 and 100"})
	}
	if p.Score < 0 {
		v = append(v, model.Violation{Field: field + ".score", Rule: "must be >= 0"})
	}
	if p.Lines < 0 {
		v = append(v, model.Violation{Field: field + ".lines", Rule: "must be >= 0"})
	}
	return v
}
