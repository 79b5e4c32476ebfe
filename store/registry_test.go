package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"storefront/models"
)

var testUser = models.UserSession{ID: "1", Name: "John Doe", Email: "john@example.com"}

type countingBackend struct {
	*MemoryBackend
	gets atomic.Int32
}

func (c *countingBackend) Get(ctx context.Context, visitorID, key string) ([]byte, error) {
	c.gets.Add(1)
	time.Sleep(5 * time.Millisecond)
	return c.MemoryBackend.Get(ctx, visitorID, key)
}

func TestRegistry_ConcurrentFirstAccessLoadsOnce(t *testing.T) {
	backend := &countingBackend{MemoryBackend: NewMemoryBackend()}
	r := NewRegistry(backend, RegistryOptions{}, nil)

	const N = 50
	var mu sync.Mutex
	seen := map[*Visitor]struct{}{}

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < N; i++ {
		g.Go(func() error {
			v, err := r.Get(ctx, "visitor-a")
			if err != nil {
				return err
			}
			mu.Lock()
			seen[v] = struct{}{}
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Len(t, seen, 1)
	// one read for the cart key and one for the session key
	assert.Equal(t, int32(2), backend.gets.Load())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_RestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	first := NewRegistry(backend, RegistryOptions{}, nil)
	v, err := first.Get(ctx, "visitor-b")
	require.NoError(t, err)
	v.Cart.Add(ctx, cookies)
	v.Cart.Add(ctx, cookies)
	v.Auth.Login(ctx, testUser)

	// a fresh process sees the same state
	second := NewRegistry(backend, RegistryOptions{}, nil)
	v2, err := second.Get(ctx, "visitor-b")
	require.NoError(t, err)
	assert.Equal(t, v.Cart.Items(), v2.Cart.Items())
	assert.Equal(t, testUser, *v2.Auth.User())

	other, err := second.Get(ctx, "visitor-c")
	require.NoError(t, err)
	assert.Empty(t, other.Cart.Items())
	assert.False(t, other.Auth.IsAuthenticated())
}

func TestRegistry_CustomKeys(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	r := NewRegistry(backend, RegistryOptions{CartKey: "cart", SessionKey: "user"}, nil)

	v, err := r.Get(ctx, "visitor-d")
	require.NoError(t, err)
	v.Cart.Add(ctx, marie)
	v.Auth.Login(ctx, testUser)

	_, err = backend.Get(ctx, "visitor-d", "cart")
	assert.NoError(t, err)
	_, err = backend.Get(ctx, "visitor-d", "user")
	assert.NoError(t, err)
}

func TestRegistry_NotificationsReachInbox(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(NewMemoryBackend(), RegistryOptions{}, nil)
	v, err := r.Get(ctx, "visitor-e")
	require.NoError(t, err)

	v.Cart.Add(ctx, marie)
	v.Cart.Clear(ctx)

	notes := v.Inbox.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Cart cleared", notes[0].Title)
}

func TestRegistry_RejectsEmptyID(t *testing.T) {
	r := NewRegistry(NewMemoryBackend(), RegistryOptions{}, nil)
	_, err := r.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidVisitor)
}

func TestNewVisitorID(t *testing.T) {
	a, b := NewVisitorID(), NewVisitorID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestRegistry_EvictIdle(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	r := NewRegistry(backend, RegistryOptions{IdleTTL: time.Minute}, nil)

	stale, err := r.Get(ctx, "visitor-f")
	require.NoError(t, err)
	stale.Cart.Add(ctx, bread)
	_, err = r.Get(ctx, "visitor-g")
	require.NoError(t, err)

	assert.Zero(t, r.EvictIdle(time.Now()))
	assert.Equal(t, 2, r.EvictIdle(time.Now().Add(2*time.Minute)))
	assert.Zero(t, r.Len())

	reloaded, err := r.Get(ctx, "visitor-f")
	require.NoError(t, err)
	assert.NotSame(t, stale, reloaded)
	assert.Equal(t, stale.Cart.Items(), reloaded.Cart.Items())
}

func TestRegistry_EvictIdleKeepsRecentVisitors(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(NewMemoryBackend(), RegistryOptions{IdleTTL: time.Minute}, nil)

	_, err := r.Get(ctx, "visitor-h")
	require.NoError(t, err)
	assert.Zero(t, r.EvictIdle(time.Now().Add(30*time.Second)))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_NoIdleTTLNeverEvicts(t *testing.T) {
	r := NewRegistry(NewMemoryBackend(), RegistryOptions{}, nil)
	_, err := r.Get(context.Background(), "visitor-i")
	require.NoError(t, err)
	assert.Zero(t, r.EvictIdle(time.Now().Add(24*time.Hour)))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_RunEvictsAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewRegistry(NewMemoryBackend(), RegistryOptions{IdleTTL: time.Millisecond}, nil)
	_, err := r.Get(context.Background(), "visitor-j")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
