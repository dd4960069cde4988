package password

import (
	"context"
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func fastHasher() Hasher {
	return New(Options{Cost: bcrypt.MinCost})
}

func TestHasher_RoundTrip(t *testing.T) {
	h := fastHasher()
	ctx := context.Background()

	hash, err := h.Hash(ctx, "Secret123")
	require.NoError(t, err)
	require.NotEqual(t, "Secret123", hash)
	require.True(t, strings.HasPrefix(hash, "$2a$"))

	require.True(t, h.Verify(ctx, "Secret123", hash))
	require.False(t, h.Verify(ctx, "secret123", hash))
}

func TestHasher_SaltedHashesDiffer(t *testing.T) {
	h := fastHasher()
	ctx := context.Background()

	a, err := h.Hash(ctx, "Secret123")
	require.NoError(t, err)
	b, err := h.Hash(ctx, "Secret123")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestHasher_DefaultCost(t *testing.T) {
	h := New(Options{}).(*hasher)
	require.Equal(t, DefaultCost, h.cost)
	require.Equal(t, AlgorithmBcrypt, h.algorithm)
}

func TestHasher_MalformedHash(t *testing.T) {
	h := fastHasher()
	ctx := context.Background()

	for _, bad := range []string{"", "plain", "$2a$10$short", "$argon2id$garbage"} {
		require.False(t, h.Verify(ctx, "Secret123", bad), bad)
	}
}

func TestHasher_VerifiesArgon2id(t *testing.T) {
	ctx := context.Background()
	argon := New(Options{Algorithm: AlgorithmArgon2id})

	hash, err := argon.Hash(ctx, "Secret123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	// bcrypt-хэшер всё равно понимает argon2id-хэши
	require.True(t, fastHasher().Verify(ctx, "Secret123", hash))

	legacy, err := argon2id.CreateHash("Other456", argon2id.DefaultParams)
	require.NoError(t, err)
	require.False(t, fastHasher().Verify(ctx, "Secret123", legacy))
}

func TestHasher_CancelledContext(t *testing.T) {
	h := New(Options{Cost: bcrypt.MinCost, MaxConcurrent: 1}).(*hasher)
	hash, err := h.Hash(context.Background(), "Secret123")
	require.NoError(t, err)

	// занимаем единственный слот
	require.NoError(t, h.sem.Acquire(context.Background(), 1))
	defer h.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.False(t, h.Verify(ctx, "Secret123", hash))
	_, err = h.Hash(ctx, "Secret123")
	require.ErrorIs(t, err, context.Canceled)
}
