package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Miraines/bankr/api-service/internal/domain/auth/repo"
	"github.com/stretchr/testify/require"
)

func TestLoginLimiter_BlocksAfterMax(t *testing.T) {
	l := NewLoginLimiter(repo.LimiterOptions{MaxAttempts: 3, Window: time.Minute}, 100)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "a@b.c")
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, l.Fail(ctx, "a@b.c"))
	}
	ok, _ := l.Allow(ctx, "a@b.c")
	require.False(t, ok)

	// другие ключи не затронуты
	ok, _ = l.Allow(ctx, "x@y.z")
	require.True(t, ok)

	require.NoError(t, l.Reset(ctx, "a@b.c"))
	ok, _ = l.Allow(ctx, "a@b.c")
	require.True(t, ok)
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	l := NewLoginLimiter(repo.LimiterOptions{MaxAttempts: 1, Window: time.Minute}, 100)
	ctx := context.Background()
	now := time.Now()
	l.now = func() time.Time { return now }

	require.NoError(t, l.Fail(ctx, "k"))
	ok, _ := l.Allow(ctx, "k")
	require.False(t, ok)

	now = now.Add(time.Minute + time.Second)
	ok, _ = l.Allow(ctx, "k")
	require.True(t, ok)

	// новое окно начинается с нуля
	require.NoError(t, l.Fail(ctx, "k"))
	ok, _ = l.Allow(ctx, "k")
	require.False(t, ok)
}
