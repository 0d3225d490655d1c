// pkg/memcache/idempotency.go
package mem

import (
	"sync"
	"time"
)

// IdempotencyStore remembers the response of a request keyed by the
// client-supplied Idempotency-Key header.
type IdempotencyStore interface {
	// Reserve claims key for ttl. It returns false when the key is already
	// claimed or completed and not expired.
	Reserve(key string, ttl time.Duration) bool
	Complete(key string, response []byte)
	// Lookup returns the stored response. pending is true while the first
	// request for key is still running.
	Lookup(key string) (response []byte, pending bool, ok bool)
	Release(key string)
}

type entry struct {
	response  []byte
	done      bool
	expiresAt time.Time
}

type IdempotencyKeys struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewIdempotencyKeys() *IdempotencyKeys {
	return &IdempotencyKeys{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *IdempotencyKeys) Reserve(key string, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.data[key]; ok && now.Before(e.expiresAt) {
		return false
	}
	s.data[key] = entry{expiresAt: now.Add(ttl)}
	s.sweep(now)
	return true
}

func (s *IdempotencyKeys) Complete(key string, response []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return
	}
	e.response = append([]byte(nil), response...)
	e.done = true
	s.data[key] = e
}

func (s *IdempotencyKeys) Lookup(key string) ([]byte, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return nil, false, false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.data, key) // cleanup expired
		return nil, false, false
	}
	return e.response, !e.done, true
}

// Release drops a reservation so the client may retry, e.g. after a 5xx.
func (s *IdempotencyKeys) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// sweep drops expired entries. Callers hold mu.
func (s *IdempotencyKeys) sweep(now time.Time) {
	for k, e := range s.data {
		if !now.Before(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
