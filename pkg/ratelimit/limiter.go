package ratelimit

import (
	"hash/fnv"
	"sync"
	"time"
)

const shardCount = 16

// Limiter enforces a fixed per-user request quota over a rolling window.
// Users are sharded so reconnect storms on one key do not serialize every
// other user behind a single lock. The quota check and increment happen
// under one shard lock, so the count is atomic within its window.
type Limiter struct {
	limit  int
	window time.Duration
	shards [shardCount]*shard
	now    func() time.Time
}

type shard struct {
	mu    sync.Mutex
	users map[string][]time.Time
}

// NewLimiter creates a limiter allowing limit requests per user per window.
func NewLimiter(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
	for i := range l.shards {
		l.shards[i] = &shard{users: make(map[string][]time.Time)}
	}
	return l
}

// Allow records one request for user if the quota permits it. When denied,
// the returned duration says how long until the oldest recorded request
// leaves the window.
func (l *Limiter) Allow(user string) (bool, time.Duration) {
	s := l.shards[shardFor(user)]

	s.mu.Lock()
	defer s.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	stamps := s.users[user]
	live := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			live = append(live, ts)
		}
	}

	if len(live) >= l.limit {
		s.users[user] = live
		return false, live[0].Sub(cutoff)
	}

	s.users[user] = append(live, now)
	return true, 0
}

// Remaining returns how many requests user has left in the current window.
func (l *Limiter) Remaining(user string) int {
	s := l.shards[shardFor(user)]

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	used := 0
	for _, ts := range s.users[user] {
		if ts.After(cutoff) {
			used++
		}
	}

	if used >= l.limit {
		return 0
	}
	return l.limit - used
}

func shardFor(user string) int {
	h := fnv.New32a()
	h.Write([]byte(user))
	return int(h.Sum32() % shardCount)
}
