package seeder

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/duelboard/internal/domain/model"
)

// Score and line ranges for generated players.
const (
	maxScore      = 5000
	scorePerLine  = 100
	tieChance     = 0.05
	nameSuffixLen = 8
)

var baseNames = []string{
	"alice", "bob", "carol", "dave", "erin", "frank", "grace", "heidi",
	"ivan", "judy", "mallory", "niaj", "olivia", "peggy", "rupert", "sybil",
}

// Generator produces random game submissions.
type Generator struct {
	rng            *rand.Rand
	twoPlayerRatio float64
	invalidRatio   float64
}

// NewGenerator returns a Generator; seed 0 draws a random seed.
func NewGenerator(seed uint64, twoPlayerRatio, invalidRatio float64) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Generator{
		rng:            rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		twoPlayerRatio: twoPlayerRatio,
		invalidRatio:   invalidRatio,
	}
}

// Games returns n submissions.
func (g *Generator) Games(n int) []model.NewGame {
	out := make([]model.NewGame, n)
	for i := range out {
		out[i] = g.Game()
	}
	return out
}

// Game returns one submission, possibly malformed per invalidRatio.
func (g *Generator) Game() model.NewGame {
	var game model.NewGame
	if g.rng.Float64() < g.twoPlayerRatio {
		game = g.duel()
	} else {
		game = model.NewGame{Mode: string(model.ModeSinglePlayer), Player1: g.player()}
	}
	if g.rng.Float64() < g.invalidRatio {
		g.corrupt(&game)
	}
	return game
}

func (g *Generator) duel() model.NewGame {
	p1, p2 := g.player(), g.player()
	game := model.NewGame{Mode: string(model.ModeTwoPlayer), Player1: p1, Player2: p2}
	if g.rng.Float64() < tieChance {
		return game
	}
	winner := model.SlotPlayer1
	if p2.Score > p1.Score {
		winner = model.SlotPlayer2
	}
	game.Winner = &winner
	return game
}

func (g *Generator) player() *model.PlayerResult {
	score := g.rng.IntN(maxScore + 1)
	return &model.PlayerResult{
		Name:  baseNames[g.rng.IntN(len(baseNames))] + "-" + uuid.NewString()[:nameSuffixLen],
		Score: score,
		Lines: score / scorePerLine,
	}
}

// corrupt breaks one rule so the service must reject the game.
func (g *Generator) corrupt(game *model.NewGame) {
	switch g.rng.IntN(4) {
	case 0:
		game.Mode = "3P"
	case 1:
		game.Player1.Score = -1
	case 2:
		game.Player1.Name = ""
	default:
		if game.Mode == string(model.ModeTwoPlayer) {
			game.Player2 = nil
		} else {
			w := model.SlotPlayer1
			game.Winner = &w
		}
	}
}
