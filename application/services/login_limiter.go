package services

import (
	"sync"
	"time"

	"github.com/gbessoni/selfie-fm/application/ports/outbound"
)

// LoginLimiter throttles failed login attempts per identity inside a fixed
// window. The counter store and clock are injected so the limiter carries no
// global state.
type LoginLimiter struct {
	store       outbound.AttemptStorePort
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

func NewLoginLimiter(store outbound.AttemptStorePort, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		store:       store,
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// Allow records one attempt for identity and reports whether it is still
// within the limit. An expired window starts a fresh count.
func (l *LoginLimiter) Allow(identity string) bool {
	now := l.now()

	count, first, ok := l.store.Get(identity)
	if !ok || now.Sub(first) > l.window {
		l.store.Put(identity, 1, now)
		return true
	}

	if count >= l.maxAttempts {
		return false
	}
	l.store.Put(identity, count+1, first)
	return true
}

// Reset clears the identity's counter, called after a successful login.
func (l *LoginLimiter) Reset(identity string) {
	l.store.Reset(identity)
}

// memoryAttemptStore is the in-process counter store.
type memoryAttemptStore struct {
	mu       sync.Mutex
	attempts map[string]attemptRecord
}

type attemptRecord struct {
	count int
	first time.Time
}

func NewMemoryAttemptStore() outbound.AttemptStorePort {
	return &memoryAttemptStore{attempts: make(map[string]attemptRecord)}
}

func (m *memoryAttemptStore) Get(identity string) (int, time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.attempts[identity]
	return rec.count, rec.first, ok
}

func (m *memoryAttemptStore) Put(identity string, count int, first time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[identity] = attemptRecord{count: count, first: first}
}

func (m *memoryAttemptStore) Reset(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.attempts, identity)
}
