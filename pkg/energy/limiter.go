package energy

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore manages per-source rate limiters: source key -> rate limiter.
// The ingestion endpoint keys by client address, so a misbehaving sender cannot
// flood the store.
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(source string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[source]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[source] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(source string, sourceRate rate.Limit, sourceBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[source] = rate.NewLimiter(sourceRate, sourceBurst)
}
