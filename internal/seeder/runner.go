package seeder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/okian/duelboard/internal/domain/model"
	"github.com/okian/duelboard/pkg/logger"
)

// Run executes a complete seeding run against cfg.BaseURL and writes the
// rendered report to out. Verification failures are returned alongside
// the report.
func Run(ctx context.Context, cfg *Config, out io.Writer) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	log := logger.Named("seeder")
	report := Report{StartTime: time.Now()}

	log.Info(ctx, "starting seeding run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("games", cfg.NumGames),
		logger.Int("workers", cfg.Workers),
		logger.Float64("twoPlayerRatio", cfg.TwoPlayerRatio),
		logger.Float64("invalidRatio", cfg.InvalidRatio),
	)

	client := NewClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := client.CheckHealth(ctx); err != nil {
		return report, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Snapshot stats
	before, err := client.Stats(ctx)
	if err != nil {
		return report, fmt.Errorf("stats retrieval failed: %w", err)
	}
	report.Before = before

	// Step 3: Generate and submit
	games := NewGenerator(cfg.Seed, cfg.TwoPlayerRatio, cfg.InvalidRatio).Games(cfg.NumGames)
	report.Generated = len(games)

	res := submitGames(ctx, client, games, cfg.Workers, cfg.Verbose)
	report.Submitted = res.Submitted
	report.Accepted = res.Accepted
	report.Rejected = res.Rejected
	report.Failed = res.Failed

	// Step 4: Read back
	top, err := client.Leaderboard(ctx, string(model.FilterAll), cfg.TopN)
	if err != nil {
		return report, fmt.Errorf("leaderboard retrieval failed: %w", err)
	}
	report.Top = top

	after, err := client.Stats(ctx)
	if err != nil {
		return report, fmt.Errorf("stats retrieval failed: %w", err)
	}
	report.After = after

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	// Step 5: Verify
	verr := errors.Join(
		VerifyOrdering(top),
		VerifyLimit(top, cfg.TopN),
		VerifyTotals(before, after, report.Accepted),
	)
	if report.Failed > 0 {
		verr = errors.Join(verr, fmt.Errorf("%w: %d submissions failed", ErrVerification, report.Failed))
	}

	fmt.Fprintln(out, RenderReport(report))
	fmt.Fprintln(out, RenderLeaderboard(fmt.Sprintf("Top %d", cfg.TopN), top))
	fmt.Fprintln(out, RenderStats(after))

	if verr != nil {
		log.Error(ctx, "verification failed", logger.Error(verr))
		return report, verr
	}
	log.Info(ctx, "seeding run completed",
		logger.Int("accepted", report.Accepted),
		logger.Duration("duration", report.Duration),
	)
	return report, nil
}

// Show renders the current leaderboard for mode and the stats to out.
func Show(ctx context.Context, baseURL string, timeout time.Duration, mode string, limit int, out io.Writer) error {
	client := NewClient(baseURL, timeout)

	top, err := client.Leaderboard(ctx, mode, limit)
	if err != nil {
		return fmt.Errorf("leaderboard retrieval failed: %w", err)
	}
	st, err := client.Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats retrieval failed: %w", err)
	}

	title := "Leaderboard"
	if mode != "" {
		title += " (" + mode + ")"
	}
	fmt.Fprintln(out, RenderLeaderboard(title, top))
	fmt.Fprintln(out, RenderStats(st))
	return nil
}
