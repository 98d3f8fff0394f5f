package rate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryLimiter es el fixed window de RedisLimiter sobre go-cache, para una
// sola instancia.
type MemoryLimiter struct {
	mu     sync.Mutex
	hits   *cache.Cache
	Max    int64
	Window time.Duration
	now    func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		hits:   cache.New(window, 2*window),
		Max:    int64(max),
		Window: window,
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := l.now().UTC()
	winStart := now.Truncate(l.Window)
	k := fmt.Sprintf("%s:%d", strings.ReplaceAll(key, " ", "_"), winStart.Unix())
	ttl := winStart.Add(l.Window).Sub(now)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.hits.Add(k, int64(1), ttl); err != nil {
		if _, err := l.hits.IncrementInt64(k, 1); err != nil {
			return Result{}, err
		}
	}
	v, _ := l.hits.Get(k)
	hits, _ := v.(int64)

	return newResult(hits, l.Max, ttl, l.Window), nil
}
