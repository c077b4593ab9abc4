// Package blacklist implements the revocation registry: a process-wide set
// of tokens that must be treated as invalid before their natural expiry.
//
// Entries are keyed by a SHA-256 digest of the raw token string rather than
// the token itself, keeping the per-entry footprint fixed regardless of
// token size. Each entry carries the token's original expiry so the
// registry can drop it once the token would have expired anyway; the
// registry's size is therefore bounded by the number of revocations within
// one TTL window.
package blacklist

import (
	"context"
	"crypto/sha256"
	"sync"
	"time"

	"github.com/devops25/userauth/internal/logging"
)

// Blacklist is safe for concurrent use. Construct it with New and share it
// by pointer; there is no package-level instance.
type Blacklist struct {
	mu      sync.RWMutex
	entries map[[sha256.Size]byte]time.Time
	log     logging.Logger
}

func New(log logging.Logger) *Blacklist {
	return &Blacklist{
		entries: make(map[[sha256.Size]byte]time.Time),
		log:     log.With("module", "blacklist"),
	}
}

func key(token string) [sha256.Size]byte {
	return sha256.Sum256([]byte(token))
}

// Revoke inserts the token with its original expiry. Revoking a token that
// is already present has no further effect. Each call also prunes entries
// that have passed their expiry, so callers get bounded growth even without
// the background pruner.
func (b *Blacklist) Revoke(token string, expiry time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pruneLocked(time.Now())

	k := key(token)
	if _, ok := b.entries[k]; ok {
		return
	}
	b.entries[k] = expiry
}

// IsRevoked reports whether the token has been revoked. Once Revoke returns
// for a token, IsRevoked returns true for it on every goroutine until the
// entry is pruned.
func (b *Blacklist) IsRevoked(token string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.entries[key(token)]
	return ok
}

// Prune removes every entry whose stored expiry is at or before now and
// returns the number of entries removed.
func (b *Blacklist) Prune(now time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.pruneLocked(now)
}

func (b *Blacklist) pruneLocked(now time.Time) int {
	removed := 0
	for k, expiry := range b.entries {
		if !expiry.After(now) {
			delete(b.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the current number of entries.
func (b *Blacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.entries)
}

// Run prunes the registry every interval until ctx is cancelled. Intended
// to be started once by the application as a background goroutine.
func (b *Blacklist) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.log.Info(ctx, "stopping blacklist pruner")
			return
		case now := <-ticker.C:
			if removed := b.Prune(now); removed > 0 {
				b.log.Debug(ctx, "pruned expired revocations", "removed", removed, "remaining", b.Len())
			}
		}
	}
}
