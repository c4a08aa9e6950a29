package bookingcode

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures NewRedisClient.
type RedisOptions struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

// NewRedisClient builds a client from a redis:// URL when one is given, else
// from host and port, and pings it.
func NewRedisClient(ctx context.Context, o RedisOptions) (*redis.Client, error) {
	var opts *redis.Options
	if o.URL != "" {
		parsed, err := redis.ParseURL(o.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     net.JoinHostPort(o.Host, o.Port),
			Password: o.Password,
			DB:       o.DB,
		}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// RedisSequencer keeps one INCR counter per key. Counters expire after ttl so
// per-day and per-month keys do not accumulate.
type RedisSequencer struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisSequencer creates a sequencer on client.
func NewRedisSequencer(client redis.Cmdable, ttl time.Duration) *RedisSequencer {
	return &RedisSequencer{client: client, ttl: ttl}
}

func (s *RedisSequencer) Next(ctx context.Context, key string) (int64, error) {
	redisKey := "seq:" + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	if s.ttl > 0 {
		pipe.Expire(ctx, redisKey, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("incrementing %s: %w", redisKey, err)
	}
	return incr.Val(), nil
}
