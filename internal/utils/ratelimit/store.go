package ratelimit

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCategory is the rate used for categories without their own rate.
const DefaultCategory = "default"

// Store keeps one limiter per client and category and evicts limiters that
// have been idle longer than the configured TTL.
type Store struct {
	limiters map[string]*Limiter
	rates    map[string]Rate
	mu       sync.RWMutex

	cleanupInterval time.Duration
	idleTTL         time.Duration
	now             func() time.Time
	stop            chan struct{}
	stopOnce        sync.Once
}

// NewStore creates a store and starts its cleanup loop. Call Close to stop it.
//
// Parameters:
//   - defaultRate: The rate for clients in categories without their own rate
//   - cleanupInterval: How often idle limiters are evicted
//   - idleTTL: How long a limiter may stay unused before eviction
func NewStore(defaultRate Rate, cleanupInterval, idleTTL time.Duration) *Store {
	store := newStore(defaultRate, idleTTL, time.Now)
	store.cleanupInterval = cleanupInterval
	if cleanupInterval > 0 {
		go store.cleanupRoutine()
	}
	return store
}

func newStore(defaultRate Rate, idleTTL time.Duration, now func() time.Time) *Store {
	return &Store{
		limiters: make(map[string]*Limiter),
		rates:    map[string]Rate{DefaultCategory: defaultRate},
		idleTTL:  idleTTL,
		now:      now,
		stop:     make(chan struct{}),
	}
}

// Allow reports whether a request of clientID in category may proceed.
func (s *Store) Allow(clientID, category string) bool {
	return s.GetLimiter(clientID, category).Allow()
}

// GetLimiter returns the limiter of a client in a category, creating it on
// first use. Clients are limited separately per category.
func (s *Store) GetLimiter(clientID, category string) *Limiter {
	key := category + "|" + clientID

	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()
	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	rate, ok := s.rates[category]
	if !ok {
		rate = s.rates[DefaultCategory]
	}
	limiter = newLimiterAt(rate.RequestsPerSecond, rate.Burst, s.now)
	s.limiters[key] = limiter
	return limiter
}

// SetRate sets the rate of a category. Existing limiters keep their rate.
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[category] = rate
}

// Len returns the number of tracked limiters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// Close stops the cleanup loop.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) cleanupRoutine() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

// cleanup evicts limiters idle for longer than the TTL.
func (s *Store) cleanup() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, limiter := range s.limiters {
		if limiter.idleSince(cutoff) {
			delete(s.limiters, key)
			evicted++
		}
	}
	if evicted > 0 {
		log.Debug().Int("evicted", evicted).Int("remaining", len(s.limiters)).Msg("Rate limiters evicted")
	}
	return evicted
}
