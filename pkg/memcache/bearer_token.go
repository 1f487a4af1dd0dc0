// pkg/mem/bearer_token.go
package mem

import (
	"sync"
	"time"
)

// BearerTokenStore caches a provider access token until shortly before the
// provider-reported expiry. Single-owner state: the pipeline handles one
// request at a time, so access is not serialized across concurrent callers.
type BearerTokenStore interface {
	Set(token string, ttl time.Duration)

	// Get returns the cached token, or "" if missing/expired.
	Get() (string, bool)
}

type tokenEntry struct {
	token     string
	expiresAt time.Time
}

type BearerTokens struct {
	mu  sync.RWMutex
	cur tokenEntry
	set bool
}

func NewBearerTokens() *BearerTokens {
	return &BearerTokens{}
}

func (s *BearerTokens) Set(token string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = tokenEntry{
		token:     token,
		expiresAt: time.Now().Add(ttl),
	}
	s.set = true
}

func (s *BearerTokens) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set || time.Now().After(s.cur.expiresAt) {
		return "", false
	}
	return s.cur.token, true
}
