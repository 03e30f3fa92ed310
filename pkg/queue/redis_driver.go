package queue

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrQueueFull is returned by Push when the backing buffer cannot accept
// another job.
var ErrQueueFull = errors.New("queue: buffer full")

const redisJobsKey = "realshop:queue:jobs"

// RedisDriver stores jobs in a Redis list so they survive restarts and can
// be shared across processes.
type RedisDriver struct {
	rdb *redis.Client
}

// NewRedisDriver wraps an existing Redis client as a queue driver.
func NewRedisDriver(rdb *redis.Client) *RedisDriver {
	return &RedisDriver{rdb: rdb}
}

func (d *RedisDriver) Push(payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.rdb.LPush(ctx, redisJobsKey, payload).Err()
}

// Pop blocks up to one second waiting for a job so the worker loop can
// observe ctx cancellation between polls.
func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	res, err := d.rdb.BRPop(ctx, time.Second, redisJobsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	// BRPOP returns [key, value].
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}
