package limiter

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

// windowScript increments the counter of the current window and arms its
// expiry on first use, atomically.
var windowScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
end
return current
`)

// RedisLimiter is a fixed-window limiter shared by every instance using the
// same Redis. Keys look like ratelimit:{client}:{window}.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	limit  int64
	now    func() time.Time
}

// NewRedisLimiter connects to Redis and allows requestsPerSecond per client.
// Rates below one use a window long enough to hold a single request
// (0.2 req/s becomes one request per five seconds).
func NewRedisLimiter(addr, password string, db int, requestsPerSecond float64) (*RedisLimiter, error) {
	if requestsPerSecond <= 0 {
		return nil, fmt.Errorf("requests per second must be positive, got %v", requestsPerSecond)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis for rate limiting: %w", err)
	}

	window := time.Second
	if requestsPerSecond < 1.0 {
		window = time.Duration(math.Ceil(1/requestsPerSecond)) * time.Second
	}

	return &RedisLimiter{
		client: client,
		window: window,
		limit:  int64(math.Ceil(requestsPerSecond * window.Seconds())),
		now:    time.Now,
	}, nil
}

// Allow implements Limiter.
// Redis errors fail open so an outage of the limiter does not take the API down.
func (l *RedisLimiter) Allow(client string) bool {
	windowSeconds := int64(l.window / time.Second)
	key := fmt.Sprintf("ratelimit:%s:%d", client, l.now().Unix()/windowSeconds)

	count, err := windowScript.Run(context.Background(), l.client, []string{key}, windowSeconds*2).Int64()
	if err != nil {
		return true
	}
	return count <= l.limit
}

// Close closes the Redis connection
func (l *RedisLimiter) Close() error {
	if l.client != nil {
		return l.client.Close()
	}
	return nil
}
