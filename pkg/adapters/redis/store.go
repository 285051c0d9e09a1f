package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/meihua/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Journal implements ports.Journal using Redis.
// Each reading is a JSON string key; a sorted set indexes IDs by cast time.
type Journal struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Journal)

// WithTTL sets the expiration for readings.
func WithTTL(ttl time.Duration) Option {
	return func(j *Journal) {
		j.ttl = ttl
	}
}

// WithPrefix sets the key prefix for readings.
func WithPrefix(prefix string) Option {
	return func(j *Journal) {
		j.prefix = prefix
	}
}

// New creates a new Redis journal with options.
func New(address, password string, db int, opts ...Option) *Journal {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis journal from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Journal {
	j := &Journal{
		client: client,
		prefix: "meihua:reading:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *Journal) key(id string) string {
	return j.prefix + id
}

func (j *Journal) indexKey() string {
	return j.prefix + "index"
}

// Save persists the reading and indexes it by cast time.
func (j *Journal) Save(ctx context.Context, reading *domain.Reading) error {
	data, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	pipe := j.client.TxPipeline()
	pipe.Set(ctx, j.key(reading.ID), data, j.ttl)
	pipe.ZAdd(ctx, j.indexKey(), backend.Z{
		Score:  float64(reading.CastAt.UnixMilli()),
		Member: reading.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves a reading from Redis.
func (j *Journal) Load(ctx context.Context, id string) (*domain.Reading, error) {
	val, err := j.client.Get(ctx, j.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrReadingNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var r domain.Reading
	if err := json.Unmarshal([]byte(val), &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reading: %w", err)
	}
	return &r, nil
}

// Delete removes the reading and its index entry.
func (j *Journal) Delete(ctx context.Context, id string) error {
	pipe := j.client.TxPipeline()
	pipe.Del(ctx, j.key(id))
	pipe.ZRem(ctx, j.indexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns readings newest first. Index entries whose key has expired
// are pruned lazily.
func (j *Journal) List(ctx context.Context, limit int) ([]*domain.Reading, error) {
	ids, err := j.client.ZRevRange(ctx, j.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Reading{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = j.key(id)
	}
	vals, err := j.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch readings: %w", err)
	}

	out := make([]*domain.Reading, 0, len(ids))
	var expired []any
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		if limit > 0 && len(out) >= limit {
			continue
		}
		var r domain.Reading
		if err := json.Unmarshal([]byte(s), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reading %s: %w", ids[i], err)
		}
		out = append(out, &r)
	}

	if len(expired) > 0 {
		if err := j.client.ZRem(ctx, j.indexKey(), expired...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune expired readings: %w", err)
		}
	}
	return out, nil
}

// Close closes the redis client.
func (j *Journal) Close() error {
	return j.client.Close()
}

// Ping checks that the server is reachable.
func (j *Journal) Ping(ctx context.Context) error {
	if err := j.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
