package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/duelboard/internal/domain/model"
)

// MemoryStore is an in-process Store. Records live in a slice in id order.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.GameRecord
	nextID  int64
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := newSettings(opts)
	return &MemoryStore{nextID: 1, now: s.now}
}

// Insert stores a copy of rec under the next id.
func (s *MemoryStore) Insert(ctx context.Context, rec model.GameRecord) (out model.GameRecord, err error) {
	defer func(start time.Time) { observe(opInsert, start, err) }(time.Now())

	if err := rec.CheckInvariant(); err != nil {
		return model.GameRecord{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.GameRecord{}, model.NewStorageError(opInsert, err)
	}

	rec = clone(rec)
	s.mu.Lock()
	rec.ID = s.nextID
	rec.CreatedAt = s.now().UTC()
	s.nextID++
	s.records = append(s.records, rec)
	s.mu.Unlock()

	return clone(rec), nil
}

// Scan returns copies of the records matching filter.
func (s *MemoryStore) Scan(ctx context.Context, filter model.ModeFilter) (out []model.GameRecord, err error) {
	defer func(start time.Time) { observe(opScan, start, err) }(time.Now())

	if err := ctx.Err(); err != nil {
		return nil, model.NewStorageError(opScan, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out = make([]model.GameRecord, 0, len(s.records))
	for _, rec := range s.records {
		if filter.Matches(rec.Mode) {
			out = append(out, clone(rec))
		}
	}
	return out, nil
}

// Ping always succeeds unless ctx is done.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return model.NewStorageError(opPing, ctx.Err())
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// clone detaches the optional fields so callers cannot mutate stored state.
func clone(rec model.GameRecord) model.GameRecord {
	if rec.Player2 != nil {
		p := *rec.Player2
		rec.Player2 = &p
	}
	if rec.Winner != nil {
		w := *rec.Winner
		rec.Winner = &w
	}
	return rec
}
