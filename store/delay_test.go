package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDelay_RunsAfterPause(t *testing.T) {
	defer goleak.VerifyNone(t)

	ran := false
	start := time.Now()
	err := NewDelay(20*time.Millisecond).Do(context.Background(), func() { ran = true })

	require.NoError(t, err)
	assert.True(t, ran)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestDelay_CancelledBeforeFiring(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	ran := false
	err := NewDelay(time.Hour).Do(ctx, func() { ran = true })

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}

func TestDelay_ZeroStillHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := NewDelay(0).Do(ctx, func() { ran = true })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)

	require.NoError(t, NewDelay(0).Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestDelay_CancelledLoginIsNeverApplied(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	backend := NewMemoryBackend()
	a := LoadAuth(context.Background(), Scope(backend, "v1"), "", nil)

	err := NewDelay(time.Second).Do(ctx, func() {
		a.Login(context.Background(), testUser)
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, a.IsAuthenticated())
}
