// Package seeder generates random games, submits them to a running
// duelboard service and checks what comes back.
package seeder

import (
	"fmt"
	"time"

	"github.com/okian/duelboard/internal/domain/model"
)

// Defaults for Config.
const (
	DefaultBaseURL        = "http://localhost:8000"
	DefaultNumGames       = 200
	DefaultWorkers        = 8
	DefaultTimeout        = 10 * time.Second
	DefaultTopN           = 10
	DefaultTwoPlayerRatio = 0.5
)

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL string
	Timeout time.Duration

	NumGames int
	Workers  int
	TopN     int

	// TwoPlayerRatio is the share of generated games that are 2P.
	TwoPlayerRatio float64
	// InvalidRatio is the share of games deliberately malformed to
	// exercise rejection.
	InvalidRatio float64
	// Seed makes generation reproducible; 0 picks a random seed.
	Seed uint64

	Verbose bool
}

// NewConfig returns a Config holding the defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		Timeout:        DefaultTimeout,
		NumGames:       DefaultNumGames,
		Workers:        DefaultWorkers,
		TopN:           DefaultTopN,
		TwoPlayerRatio: DefaultTwoPlayerRatio,
	}
}

// Validate checks the config for values a run cannot use.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: url must not be empty", ErrInvalidConfig)
	case c.NumGames < 1:
		return fmt.Errorf("%w: games must be >= 1", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be >= 1", ErrInvalidConfig)
	case c.TopN < 1 || c.TopN > 100:
		return fmt.Errorf("%w: top must be between 1 and 100", ErrInvalidConfig)
	case c.TwoPlayerRatio < 0 || c.TwoPlayerRatio > 1:
		return fmt.Errorf("%w: two-player-ratio must be between 0 and 1", ErrInvalidConfig)
	case c.InvalidRatio < 0 || c.InvalidRatio > 1:
		return fmt.Errorf("%w: invalid-ratio must be between 0 and 1", ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be > 0", ErrInvalidConfig)
	}
	return nil
}

// Report holds the outcome of a seeding run.
type Report struct {
	Generated int
	Submitted int
	Accepted  int
	Rejected  int
	Failed    int

	Before model.LeaderboardStats
	After  model.LeaderboardStats
	Top    []model.LeaderboardEntry

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// GamesPerSecond reports submission throughput.
func (r Report) GamesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Submitted) / r.Duration.Seconds()
}
