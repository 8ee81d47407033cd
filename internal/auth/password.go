package auth

import (
	"context"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 8

// Hasher hashes and verifies passwords on a bounded pool so bcrypt work
// cannot starve the request-serving goroutines.
type Hasher struct {
	cost int
	pool *semaphore.Weighted
}

// NewHasher builds a hasher with the given bcrypt cost and pool size.
func NewHasher(cost, workers int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Hasher{cost: cost, pool: semaphore.NewWeighted(int64(workers))}
}

// Cost returns the configured work factor.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns a salted bcrypt hash of password. If ctx ends first the
// in-flight work is abandoned and ctx.Err() is returned.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	type result struct {
		hash []byte
		err  error
	}
	out, err := run(ctx, h.pool, func() result {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
		return result{hash: hashed, err: err}
	})
	if err != nil {
		return "", err
	}
	if out.err != nil {
		return "", out.err
	}
	return string(out.hash), nil
}

// Verify reports whether password matches stored. A malformed stored hash
// yields false; the error is only set when ctx ends first.
func (h *Hasher) Verify(ctx context.Context, password, stored string) (bool, error) {
	return run(ctx, h.pool, func() bool {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	})
}

// IsHash reports whether value already is a bcrypt hash.
func IsHash(value string) bool {
	_, err := bcrypt.Cost([]byte(value))
	return err == nil
}

func run[T any](ctx context.Context, pool *semaphore.Weighted, fn func() T) (T, error) {
	var zero T
	if err := pool.Acquire(ctx, 1); err != nil {
		return zero, err
	}

	done := make(chan T, 1)
	go func() {
		defer pool.Release(1)
		done <- fn()
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case v := <-done:
		return v, nil
	}
}
