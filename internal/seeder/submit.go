package seeder

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/duelboard/internal/domain/model"
	"github.com/okian/duelboard/pkg/logger"
)

const progressInterval = time.Second

// GameSubmitter posts one game.
type GameSubmitter interface {
	SubmitGame(ctx context.Context, g model.NewGame) (model.GameRecord, error)
}

// submitResult counts submission outcomes.
type submitResult struct {
	Submitted int
	Accepted  int
	Rejected  int
	Failed    int
}

// submitGames posts games concurrently using a worker pool.
func submitGames(ctx context.Context, client GameSubmitter, games []model.NewGame, workers int, verbose bool) submitResult {
	log := logger.Named("seeder")
	log.Info(ctx, "submitting games", logger.Int("games", len(games)), logger.Int("workers", workers))

	var submitted, accepted, rejected, failed atomic.Int64
	var lastReport atomic.Int64

	gameChan := make(chan model.NewGame, workers*2)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for game := range gameChan {
				_, err := client.SubmitGame(ctx, game)
				submitted.Add(1)
				switch {
				case err == nil:
					accepted.Add(1)
				case errors.Is(err, ErrRejected):
					rejected.Add(1)
				default:
					failed.Add(1)
					if verbose {
						log.Warn(ctx, "submission failed", logger.Error(err))
					}
				}

				now := time.Now().UnixNano()
				last := lastReport.Load()
				if now-last >= int64(progressInterval) && lastReport.CompareAndSwap(last, now) {
					log.Info(ctx, "progress",
						logger.Int64("submitted", submitted.Load()),
						logger.Int("total", len(games)),
						logger.Int64("accepted", accepted.Load()),
						logger.Int64("rejected", rejected.Load()),
						logger.Int64("failed", failed.Load()),
					)
				}
			}
		}()
	}

	go func() {
		defer close(gameChan)
		for _, game := range games {
			select {
			case <-ctx.Done():
				return
			case gameChan <- game:
			}
		}
	}()

	wg.Wait()

	res := submitResult{
		Submitted: int(submitted.Load()),
		Accepted:  int(accepted.Load()),
		Rejected:  int(rejected.Load()),
		Failed:    int(failed.Load()),
	}
	log.Info(ctx, "submission completed",
		logger.Int("accepted", res.Accepted),
		logger.Int("rejected", res.Rejected),
		logger.Int("failed", res.Failed),
	)
	return res
}
