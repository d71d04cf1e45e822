// Package repository provides the append-only game record store and its backends.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/duelboard/internal/domain/model"
	"github.com/okian/duelboard/pkg/metrics"
)

// Supported store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

// Store operation names used in errors and metrics.
const (
	opInsert = "insert"
	opScan   = "scan"
	opPing   = "ping"
)

// Store persists completed games. Records are never updated or deleted.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/okian/duelboard/internal/adapters/repository Store
type Store interface {
	// Insert assigns an id and creation time to rec and persists it atomically.
	// It fails with *model.ValidationError when the mode/player invariant is
	// broken and with *model.StorageError on I/O failure.
	Insert(ctx context.Context, rec model.GameRecord) (model.GameRecord, error)

	// Scan returns every record matching filter, ordered by id ascending.
	Scan(ctx context.Context, filter model.ModeFilter) ([]model.GameRecord, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Driver        string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// Open builds the Store named by cfg.Driver.
func Open(ctx context.Context, cfg Config, opts ...Option) (Store, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemoryStore(opts...), nil
	case DriverPostgres, DriverSQLite:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingDSN, cfg.Driver)
		}
		return OpenSQL(ctx, cfg.Driver, cfg.DatabaseURL, opts...)
	case DriverRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingDSN, cfg.Driver)
		}
		opts = append([]Option{WithKeyPrefix(cfg.KeyPrefix)}, opts...)
		return DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// observe records latency for op and counts storage failures.
func observe(op string, start time.Time, err error) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Microseconds())/1000)
	if errors.Is(err, model.ErrStorage) {
		metrics.RecordStoreError(op)
		metrics.RecordErrorByComponent("repository", op)
	}
}
