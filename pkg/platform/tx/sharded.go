package tx

import (
	"context"
	"time"

	dErrors "hostel/pkg/domain-errors"
)

// numShards spreads room keys over a fixed set of mutexes so unrelated rooms
// rarely contend.
const numShards = 128

// DefaultTimeout bounds a transaction when the caller set no deadline.
const DefaultTimeout = 5 * time.Second

// ShardedRunner is the in-memory Runner: a per-key critical section built on
// sharded one-slot semaphores. Keys hashing to the same shard serialize; that
// is safe, only slower. A waiter gives up when its context is done.
type ShardedRunner struct {
	shards  [numShards]chan struct{}
	timeout time.Duration
}

// NewSharded builds an in-memory runner. A zero timeout uses DefaultTimeout.
func NewSharded(timeout time.Duration) *ShardedRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	r := &ShardedRunner{timeout: timeout}
	for i := range r.shards {
		r.shards[i] = make(chan struct{}, 1)
	}
	return r
}

func (r *ShardedRunner) RunInTx(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	shard := r.shards[shardFor(key)]
	select {
	case shard <- struct{}{}:
	case <-ctx.Done():
		return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "transaction aborted: timed out waiting for room lock")
	}
	defer func() { <-shard }()

	// Check again after acquiring the shard
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx)
}

func shardFor(key string) uint32 {
	return hashKey(key) % numShards
}

// hashKey is FNV-1a.
func hashKey(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
