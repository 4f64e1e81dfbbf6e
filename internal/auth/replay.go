package auth

import (
	"context"
	"sync"
	"time"
)

// ReplayGuard tracks consumed one-time codes so that a code cannot complete
// the OTP login step twice within its validity window. This closes the
// replay gap inherent to TOTP's 30-second windows.
type ReplayGuard interface {
	// Consume marks the code as used for the given username. It returns
	// ErrOTPAlreadyUsed if the code was consumed before within the TTL.
	Consume(ctx context.Context, username, code string, ttl time.Duration) error
}

// MemoryGuard is a process-local ReplayGuard for single-instance deployments
// and tests. Expired entries are swept lazily on each Consume call.
type MemoryGuard struct {
	mu   sync.Mutex
	used map[string]time.Time
	now  func() time.Time
}

// NewMemoryGuard creates an empty in-memory replay guard.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		used: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (g *MemoryGuard) Consume(_ context.Context, username, code string, ttl time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, exp := range g.used {
		if now.After(exp) {
			delete(g.used, k)
		}
	}

	key := replayKey(username, code)
	if exp, ok := g.used[key]; ok && now.Before(exp) {
		return ErrOTPAlreadyUsed
	}
	g.used[key] = now.Add(ttl)

	return nil
}

func replayKey(username, code string) string {
	return "otp:" + username + ":" + code
}
