package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/duelboard/internal/domain/model"
)

// Key suffixes under the configured prefix.
const (
	seqKey      = "games:seq"
	gameKeyPart = "game:"
	allGamesKey = "games:all"
	modeKeyPart = "games:mode:"
)

// RedisStore keeps each game as a JSON string and indexes ids in sorted
// sets scored by id, one for all games and one per mode.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
	owned  bool
}

// DialRedis connects to addr and returns a store that owns the client.
func DialRedis(ctx context.Context, addr, password string, db int, opts ...Option) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	s, err := NewRedisStore(ctx, client, opts...)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// NewRedisStore wraps an existing client. Close leaves the client open.
func NewRedisStore(ctx context.Context, client *redis.Client, opts ...Option) (*RedisStore, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	st := newSettings(opts)
	return &RedisStore{client: client, prefix: st.keyPrefix, now: st.now}, nil
}

func (s *RedisStore) key(parts ...string) string {
	k := s.prefix
	for _, p := range parts {
		k += p
	}
	return k
}

// Insert allocates an id with INCR, then writes the record and its index
// entries in one MULTI/EXEC.
func (s *RedisStore) Insert(ctx context.Context, rec model.GameRecord) (out model.GameRecord, err error) {
	defer func(start time.Time) { observe(opInsert, start, err) }(time.Now())

	if err := rec.CheckInvariant(); err != nil {
		return model.GameRecord{}, err
	}

	id, err := s.client.Incr(ctx, s.key(seqKey)).Result()
	if err != nil {
		return model.GameRecord{}, model.NewStorageError(opInsert, err)
	}

	rec = clone(rec)
	rec.ID = id
	rec.CreatedAt = s.now().UTC()

	payload, err := json.Marshal(rec)
	if err != nil {
		return model.GameRecord{}, model.NewStorageError(opInsert, err)
	}

	idStr := strconv.FormatInt(id, 10)
	member := redis.Z{Score: float64(id), Member: idStr}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(gameKeyPart, idStr), payload, 0)
		pipe.ZAdd(ctx, s.key(allGamesKey), member)
		pipe.ZAdd(ctx, s.key(modeKeyPart, string(rec.Mode)), member)
		return nil
	})
	if err != nil {
		return model.GameRecord{}, model.NewStorageError(opInsert, err)
	}
	return rec, nil
}

// Scan reads the index for filter in id order and fetches the records with MGET.
func (s *RedisStore) Scan(ctx context.Context, filter model.ModeFilter) (out []model.GameRecord, err error) {
	defer func(start time.Time) { observe(opScan, start, err) }(time.Now())

	index := s.key(allGamesKey)
	if filter != model.FilterAll {
		index = s.key(modeKeyPart, string(filter))
	}

	ids, err := s.client.ZRange(ctx, index, 0, -1).Result()
	if err != nil {
		return nil, model.NewStorageError(opScan, err)
	}
	out = make([]model.GameRecord, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(gameKeyPart, id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, model.NewStorageError(opScan, err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			return nil, model.NewStorageError(opScan, fmt.Errorf("missing record %s", keys[i]))
		}
		var rec model.GameRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, model.NewStorageError(opScan, fmt.Errorf("decode %s: %w", keys[i], err))
		}
		out = append(out, rec)
	}
	return out, nil
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return model.NewStorageError(opPing, s.client.Ping(ctx).Err())
}

// Close closes the client when the store created it.
func (s *RedisStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}
