package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domrepo "SigBoard/internal/domain/repository"

	goredis "github.com/redis/go-redis/v9"
)

// RedisRecordStore implements RecordStore on Redis lists and a status key.
// List keys are LPUSH + LTRIM at write time so readers never see more than
// the configured cap; bot_status carries a TTL so a dead producer decays to
// the offline default on its own.
type RedisRecordStore struct {
	client    *goredis.Client
	caps      map[string]int64
	statusTTL time.Duration
}

// NewRedisRecordStore creates a record store with per-list write-time caps.
func NewRedisRecordStore(client *goredis.Client, signalsCap, scansCap int64, statusTTL time.Duration) *RedisRecordStore {
	return &RedisRecordStore{
		client: client,
		caps: map[string]int64{
			domrepo.ListSignals: signalsCap,
			domrepo.ListScans:   scansCap,
		},
		statusTTL: statusTTL,
	}
}

func (s *RedisRecordStore) Append(ctx context.Context, list string, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, list, data)
	if max := s.caps[list]; max > 0 {
		pipe.LTrim(ctx, list, 0, max-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("append "+list, err)
	}
	return nil
}

func (s *RedisRecordStore) Range(ctx context.Context, list string, offset, count int64) ([][]byte, error) {
	if count <= 0 {
		// LRANGE with stop -1 would return the whole list; never issue it.
		return nil, nil
	}

	vals, err := s.client.LRange(ctx, list, offset, offset+count-1).Result()
	if err != nil {
		return nil, unavailable("range "+list, err)
	}

	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = []byte(v)
	}
	return out, nil
}

func (s *RedisRecordStore) GetStatus(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, domrepo.KeyBotStatus).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domrepo.ErrNotFound
		}
		return nil, unavailable("get status", err)
	}
	return data, nil
}

func (s *RedisRecordStore) SetStatus(ctx context.Context, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode status: %w", err)
	}
	if err := s.client.Set(ctx, domrepo.KeyBotStatus, data, s.statusTTL).Err(); err != nil {
		return unavailable("set status", err)
	}
	return nil
}

func (s *RedisRecordStore) Health(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// unavailable collapses every backend failure into the uniform taxonomy while
// keeping the original error text for logs.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %s", op, domrepo.ErrUnavailable, err)
}

var _ domrepo.RecordStore = (*RedisRecordStore)(nil)
