package blacklist

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devops25/userauth/internal/logging"
)

func newTestBlacklist() *Blacklist {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})
	return New(logging.NewSlogLogger(slog.New(h)))
}

func TestRevokeAndIsRevoked(t *testing.T) {
	t.Parallel()

	b := newTestBlacklist()
	expiry := time.Now().Add(time.Hour)

	assert.False(t, b.IsRevoked("tok-1"))

	b.Revoke("tok-1", expiry)

	assert.True(t, b.IsRevoked("tok-1"))
	assert.False(t, b.IsRevoked("tok-2"))
}

func TestRevoke_Idempotent(t *testing.T) {
	t.Parallel()

	b := newTestBlacklist()
	expiry := time.Now().Add(time.Hour)

	b.Revoke("tok-1", expiry)
	b.Revoke("tok-1", expiry)

	assert.True(t, b.IsRevoked("tok-1"))
	assert.Equal(t, 1, b.Len())
}

func TestPrune_RemovesOnlyExpiredEntries(t *testing.T) {
	t.Parallel()

	b := newTestBlacklist()
	now := time.Now()

	b.Revoke("stale", now.Add(time.Minute))
	b.Revoke("fresh", now.Add(time.Hour))

	removed := b.Prune(now.Add(30 * time.Minute))

	assert.Equal(t, 1, removed)
	assert.False(t, b.IsRevoked("stale"))
	assert.True(t, b.IsRevoked("fresh"))
	assert.Equal(t, 1, b.Len())
}

func TestPrune_BoundaryIsInclusive(t *testing.T) {
	t.Parallel()

	b := newTestBlacklist()
	expiry := time.Now().Add(time.Minute)

	b.Revoke("tok", expiry)
	removed := b.Prune(expiry)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, b.Len())
}

func TestRevoke_PrunesOpportunistically(t *testing.T) {
	t.Parallel()

	b := newTestBlacklist()

	// Entry whose expiry is already in the past disappears as soon as the
	// next revocation comes in.
	b.Revoke("stale", time.Now().Add(-time.Minute))
	b.Revoke("fresh", time.Now().Add(time.Hour))

	assert.Equal(t, 1, b.Len())
	assert.True(t, b.IsRevoked("fresh"))
}

func TestConcurrentRevokeAndIsRevoked(t *testing.T) {
	t.Parallel()

	b := newTestBlacklist()
	expiry := time.Now().Add(time.Hour)

	const n = 64

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.Revoke(fmt.Sprintf("tok-%d", i), expiry)
		}(i)
	}
	wg.Wait()

	require.Equal(t, n, b.Len())

	results := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = b.IsRevoked(fmt.Sprintf("tok-%d", i))
		}(i)
	}
	wg.Wait()

	for i, revoked := range results {
		require.True(t, revoked, "token %d not visible as revoked", i)
	}
}

func TestRun_BackgroundPruner(t *testing.T) {
	t.Parallel()

	b := newTestBlacklist()
	b.Revoke("tok", time.Now().Add(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Run(ctx, 10*time.Millisecond)
	}()

	require.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruner did not stop after cancellation")
	}
}
