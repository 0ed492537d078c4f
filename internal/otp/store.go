// Package otp holds pending password-reset codes in process memory. Entries
// are keyed by email, expire after a fixed TTL, and are lost on restart.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

type entry struct {
	code    string
	expires time.Time
}

// Store maps an email to its pending reset code. Putting a new code for an
// email overwrites any prior pending code.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *Store) Put(email, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry{code: code, expires: s.now().Add(s.ttl)}
}

// Verify reports whether a pending code exists for email, matches, and has
// not expired. The entry is left in place so validation failures elsewhere
// in the reset flow do not burn the code.
func (s *Store) Verify(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok || e.code != code {
		return false
	}
	return s.now().Before(e.expires)
}

// Invalidate removes the pending code for email, making it single-use.
func (s *Store) Invalidate(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
}

// GenerateCode returns a random 6-digit numeric code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
