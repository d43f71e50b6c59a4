package limiter

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether a client may make another request
type Limiter interface {
	// Allow reports whether a request from client (usually its IP) may proceed
	Allow(client string) bool

	// Close releases connections and background resources
	Close() error
}

// idleTTL is how long a client's bucket survives without traffic
const idleTTL = 5 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per client in process memory.
// Suitable for a single instance; use RedisLimiter behind a load balancer.
type MemoryLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*clientBucket
	limit       rate.Limit
	burst       int
	lastCleanup time.Time
}

// NewMemoryLimiter allows requestsPerSecond per client (fractions like 0.2
// mean one request every five seconds) with a burst of one second's worth,
// never less than one request.
func NewMemoryLimiter(requestsPerSecond float64) *MemoryLimiter {
	return &MemoryLimiter{
		buckets:     make(map[string]*clientBucket),
		limit:       rate.Limit(requestsPerSecond),
		burst:       max(1, int(math.Ceil(requestsPerSecond))),
		lastCleanup: time.Now(),
	}
}

// Allow implements Limiter
func (l *MemoryLimiter) Allow(client string) bool {
	now := time.Now()

	l.mu.Lock()
	b, ok := l.buckets[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[client] = b
	}
	b.lastSeen = now
	l.cleanupLocked(now)
	l.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// cleanupLocked drops idle buckets at most once per idleTTL. l.mu must be held.
func (l *MemoryLimiter) cleanupLocked(now time.Time) {
	if now.Sub(l.lastCleanup) < idleTTL {
		return
	}
	for client, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(l.buckets, client)
		}
	}
	l.lastCleanup = now
}

// Close implements Limiter; nothing to release in memory
func (l *MemoryLimiter) Close() error {
	return nil
}
