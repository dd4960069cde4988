package password

import (
	"context"
	"runtime"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"

	DefaultCost = 12
)

var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type Hasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Verify never fails: malformed hashes and cancelled contexts yield false.
	Verify(ctx context.Context, plaintext, hash string) bool
}

type Options struct {
	Algorithm string
	Cost      int
	// MaxConcurrent caps simultaneous hash computations; 0 means GOMAXPROCS.
	MaxConcurrent int
}

type hasher struct {
	algorithm string
	cost      int
	sem       *semaphore.Weighted
}

func New(opts Options) Hasher {
	if opts.Algorithm == "" {
		opts.Algorithm = AlgorithmBcrypt
	}
	if opts.Cost == 0 {
		opts.Cost = DefaultCost
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = runtime.GOMAXPROCS(0)
	}
	return &hasher{
		algorithm: opts.Algorithm,
		cost:      opts.Cost,
		sem:       semaphore.NewWeighted(int64(opts.MaxConcurrent)),
	}
}

func (h *hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	if h.algorithm == AlgorithmArgon2id {
		return argon2id.CreateHash(plaintext, argonParams)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *hasher) Verify(ctx context.Context, plaintext, hash string) bool {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	if strings.HasPrefix(hash, "$argon2id$") {
		ok, err := argon2id.ComparePasswordAndHash(plaintext, hash)
		return err == nil && ok
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
