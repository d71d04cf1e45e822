// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"

	repository "github.com/okian/duelboard/internal/adapters/repository"
	"github.com/okian/duelboard/internal/domain/model"
	"github.com/okian/duelboard/internal/domain/ranking"
	"github.com/okian/duelboard/internal/domain/stats"
	"github.com/okian/duelboard/internal/domain/validation"
	"github.com/okian/duelboard/pkg/logger"
	"github.com/okian/duelboard/pkg/metrics"
)

// Default leaderboard limits.
const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// Service implements the API dependencies for the leaderboard system.
type Service struct {
	mu sync.RWMutex

	// Record store; opened from storeCfg on Start unless injected.
	store     repository.Store
	ownsStore bool
	storeCfg  repository.Config
	storeOpts []repository.Option

	// Configuration
	defaultLimit int
	maxLimit     int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a ready store. The service will not close it.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStoreConfig selects the backend opened on Start.
func WithStoreConfig(cfg repository.Config, opts ...repository.Option) Option {
	return func(s *Service) {
		s.storeCfg = cfg
		s.storeOpts = opts
	}
}

// WithDefaultLeaderboardLimit sets the limit used when a query has none.
func WithDefaultLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.defaultLimit = limit
		}
	}
}

// WithMaxLeaderboardLimit caps leaderboard query sizes.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLimit = limit
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeCfg:     repository.Config{Driver: repository.DriverMemory},
		defaultLimit: defaultLeaderboardLimit,
		maxLimit:     maxLeaderboardLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultLimit > s.maxLimit {
		s.defaultLimit = s.maxLimit
	}
	return s
}

// Start opens the record store if one was not injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting leaderboard service...", logger.String("store", s.storeCfg.Driver))

	if s.store == nil {
		store, err := repository.Open(ctx, s.storeCfg, s.storeOpts...)
		if err != nil {
			s.logger.Error(ctx, "failed to open record store", logger.String("store", s.storeCfg.Driver), logger.Error(err))
			return err
		}
		s.store = store
		s.ownsStore = true
	}

	s.started = true
	s.logger.Info(ctx, "leaderboard service started",
		logger.Int("defaultLimit", s.defaultLimit),
		logger.Int("maxLimit", s.maxLimit),
	)
	return nil
}

// Stop closes the record store when the service opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping leaderboard service...")

	if s.ownsStore && s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(ctx, "closing record store failed", logger.Error(err))
		}
		s.store = nil
		s.ownsStore = false
	}

	s.started = false
	s.logger.Info(ctx, "leaderboard service stopped")
}

func (s *Service) getStore() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started || s.store == nil {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// Submit validates g and stores it. Rejected input fails with
// *model.ValidationError; store failures with *model.StorageError.
func (s *Service) Submit(ctx context.Context, g model.NewGame) (model.GameRecord, error) {
	store, err := s.getStore()
	if err != nil {
		return model.GameRecord{}, err
	}

	rec, err := validation.Validate(g)
	if err != nil {
		metrics.RecordValidationFailure()
		s.logger.Debug(ctx, "game rejected", logger.String("mode", g.Mode), logger.Error(err))
		return model.GameRecord{}, err
	}

	saved, err := store.Insert(ctx, rec)
	if err != nil {
		s.logIOFailure(ctx, "failed to save game", err)
		return model.GameRecord{}, err
	}

	metrics.RecordGameSubmitted(string(saved.Mode))
	s.logger.Debug(ctx, "game stored",
		logger.Int64("game_id", saved.ID),
		logger.String("mode", string(saved.Mode)),
	)
	return saved, nil
}

// Leaderboard returns up to limit ranked entries for mode. An unrecognized
// mode yields an empty result without touching the store. limit is capped
// at the configured maximum; limit < 1 yields an empty result.
func (s *Service) Leaderboard(ctx context.Context, mode string, limit int) ([]model.LeaderboardEntry, error) {
	store, err := s.getStore()
	if err != nil {
		return nil, err
	}

	filter, ok := model.ParseModeFilter(mode)
	if !ok {
		s.logger.Debug(ctx, "unrecognized leaderboard mode", logger.String("mode", mode))
		metrics.RecordLeaderboardQuery("unknown", 0)
		return []model.LeaderboardEntry{}, nil
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	if limit < 1 {
		metrics.RecordLeaderboardQuery(string(filter), 0)
		return []model.LeaderboardEntry{}, nil
	}

	records, err := store.Scan(ctx, filter)
	if err != nil {
		s.logIOFailure(ctx, "failed to read leaderboard", err)
		return nil, err
	}

	entries := ranking.Top(records, limit)
	metrics.RecordLeaderboardQuery(string(filter), len(entries))
	return entries, nil
}

// Stats aggregates every stored game.
func (s *Service) Stats(ctx context.Context) (model.LeaderboardStats, error) {
	store, err := s.getStore()
	if err != nil {
		return model.LeaderboardStats{}, err
	}
	records, err := store.Scan(ctx, model.FilterAll)
	if err != nil {
		s.logIOFailure(ctx, "failed to compute stats", err)
		return model.LeaderboardStats{}, err
	}

	out := stats.Aggregate(records)
	metrics.RecordStatsQuery(out.TotalGames)
	return out, nil
}

// Health reports whether the record store is reachable.
func (s *Service) Health(ctx context.Context) error {
	store, err := s.getStore()
	if err != nil {
		return err
	}
	return store.Ping(ctx)
}

// DefaultLimit returns the limit applied when a query has none.
func (s *Service) DefaultLimit() int { return s.defaultLimit }

// MaxLimit returns the largest accepted leaderboard limit.
func (s *Service) MaxLimit() int { return s.maxLimit }

func (s *Service) logIOFailure(ctx context.Context, msg string, err error) {
	var serr *model.StorageError
	if errors.As(err, &serr) {
		s.logger.Error(ctx, msg, logger.String("op", serr.Op), logger.Error(serr.Err))
		return
	}
	s.logger.Error(ctx, msg, logger.Error(err))
}
