package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares cached results between service instances.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Cache = &Redis{}

type ParamsNewRedis struct {
	Addr     string
	Password string
	DB       int

	TTL         time.Duration
	DialTimeout time.Duration
}

func NewRedis(params *ParamsNewRedis) *Redis {
	return &Redis{
		client: redis.NewClient(
			&redis.Options{
				Addr:        params.Addr,
				Password:    params.Password,
				DB:          params.DB,
				DialTimeout: params.DialTimeout,
			},
		),
		ttl: params.TTL,
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, key string) (*Entry, bool, error) {
	content, errGet := r.client.Get(ctx, key).Bytes()
	if errors.Is(errGet, redis.Nil) {
		return nil, false, nil
	}

	if errGet != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, errGet)
	}

	var result Entry

	if errUnmarshal := json.Unmarshal(content, &result); errUnmarshal != nil {
		return nil, false, fmt.Errorf("decode cached entry %s: %w", key, errUnmarshal)
	}

	return &result, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, entry *Entry) error {
	content, errMarshal := json.Marshal(entry)
	if errMarshal != nil {
		return errMarshal
	}

	if errSet := r.client.Set(ctx, key, content, r.ttl).Err(); errSet != nil {
		return fmt.Errorf("redis set %s: %w", key, errSet)
	}

	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
