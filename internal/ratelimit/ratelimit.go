package ratelimit

import (
	"sync"
	"time"

	"github.com/orgball2608/social-detail-bot/pkg/config"
	"golang.org/x/time/rate"
)

// idleTTL is how long a chat's bucket is kept after its last request.
const idleTTL = 30 * time.Minute

// Limiter decides whether a chat user may issue another bot command.
type Limiter interface {
	Allow(userID int64) bool
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// InMemoryLimiter keeps one token bucket per user.
type InMemoryLimiter struct {
	mu      sync.Mutex
	users   map[int64]*bucket
	r       rate.Limit
	b       int
	now     func() time.Time
	lastGC  time.Time
	idleTTL time.Duration
}

// NewInMemoryLimiter allows requests per window with the given burst.
// NewInMemoryLimiter(12, time.Minute, 3) lets a user run one command every
// five seconds, three in a row.
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	if requests <= 0 {
		requests = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &InMemoryLimiter{
		users:   make(map[int64]*bucket),
		r:       rate.Every(per / time.Duration(requests)),
		b:       burst,
		now:     time.Now,
		idleTTL: idleTTL,
	}
}

// New builds the per-user limiter for the Telegram command handler.
func New(cfg *config.Config) Limiter {
	return NewInMemoryLimiter(cfg.Telegram.RequestsPerMinute, time.Minute, cfg.Telegram.Burst)
}

func (l *InMemoryLimiter) Allow(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictIdle(now)

	bk, ok := l.users[userID]
	if !ok {
		bk = &bucket{limiter: rate.NewLimiter(l.r, l.b)}
		l.users[userID] = bk
	}
	bk.lastSeen = now

	return bk.limiter.AllowN(now, 1)
}

// Len reports how many users currently hold a bucket.
func (l *InMemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.users)
}

// evictIdle runs at most once per idleTTL; mu must be held.
func (l *InMemoryLimiter) evictIdle(now time.Time) {
	if now.Sub(l.lastGC) < l.idleTTL {
		return
	}
	l.lastGC = now
	for id, bk := range l.users {
		if now.Sub(bk.lastSeen) >= l.idleTTL {
			delete(l.users, id)
		}
	}
}
