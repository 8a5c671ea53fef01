package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint of SCAN when clearing by prefix.
const scanBatch = 100

// RedisOptions configures [NewRedisCacheClient].
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	Timeout  time.Duration
}

type redisCacheClient struct {
	rdb *redis.Client
}

// NewRedisCacheClient returns a [CacheClient] backed by Redis. No connection
// is made until the first command.
func NewRedisCacheClient(opts RedisOptions) CacheClient {
	return &redisCacheClient{
		rdb: redis.NewClient(&redis.Options{
			Addr:         opts.Address,
			Password:     opts.Password,
			DB:           opts.DB,
			DialTimeout:  opts.Timeout,
			ReadTimeout:  opts.Timeout,
			WriteTimeout: opts.Timeout,
			// reconnection is driven by the cache tier
			MaxRetries: -1,
		}),
	}
}

func (r *redisCacheClient) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *redisCacheClient) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return data, err
}

func (r *redisCacheClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheClient) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.rdb.Del(ctx, keys...).Err()
}

func (r *redisCacheClient) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.rdb.Exists(ctx, key).Result()
	return n > 0, err
}

func (r *redisCacheClient) RPush(ctx context.Context, key string, value []byte, keep int) error {
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, key, value)
	pipe.LTrim(ctx, key, int64(-keep), -1)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisCacheClient) LRange(ctx context.Context, key string) ([][]byte, error) {
	values, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = []byte(v)
	}
	return out, nil
}

func (r *redisCacheClient) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.rdb.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()

	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return r.Del(ctx, keys...)
}

func (r *redisCacheClient) Close() error {
	return r.rdb.Close()
}
