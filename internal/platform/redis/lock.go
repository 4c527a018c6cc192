package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	dErrors "hostel/pkg/domain-errors"
	"hostel/pkg/platform/tx"
)

const (
	lockKeyPrefix     = "hostel:lock:room:"
	defaultLockTTL    = 10 * time.Second
	defaultRetryDelay = 25 * time.Millisecond
)

// releaseScript deletes the lock only if this holder still owns it, so an
// expired-and-reacquired lock is never released by the previous holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// LockingRunner wraps another tx.Runner with a distributed per-room lock so
// several service instances serialize writes on the same room even when the
// underlying runner only protects a single process.
type LockingRunner struct {
	client redis.UniversalClient
	next   tx.Runner
	ttl    time.Duration
	retry  time.Duration
}

type LockOption func(*LockingRunner)

// WithLockTTL sets how long a lock survives a crashed holder.
func WithLockTTL(ttl time.Duration) LockOption {
	return func(l *LockingRunner) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// WithRetryDelay sets the polling interval while waiting for a held lock.
func WithRetryDelay(d time.Duration) LockOption {
	return func(l *LockingRunner) {
		if d > 0 {
			l.retry = d
		}
	}
}

func NewLockingRunner(client redis.UniversalClient, next tx.Runner, opts ...LockOption) *LockingRunner {
	l := &LockingRunner{
		client: client,
		next:   next,
		ttl:    defaultLockTTL,
		retry:  defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *LockingRunner) RunInTx(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if key == "" {
		return l.next.RunInTx(ctx, key, fn)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tx.DefaultTimeout)
		defer cancel()
	}

	lockKey := lockKeyPrefix + key
	token := uuid.NewString()
	if err := l.acquire(ctx, lockKey, token); err != nil {
		return err
	}
	defer l.release(context.WithoutCancel(ctx), lockKey, token)

	return l.next.RunInTx(ctx, key, fn)
}

func (l *LockingRunner) acquire(ctx context.Context, lockKey, token string) error {
	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "timed out waiting for room lock")
			}
			return dErrors.Wrap(fmt.Errorf("acquire room lock: %w", err), dErrors.CodeInternal, "failed to lock room")
		}
		if ok {
			return nil
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "timed out waiting for room lock")
		case <-timer.C:
		}
	}
}

// release is best-effort; a missed release expires after ttl.
func (l *LockingRunner) release(ctx context.Context, lockKey, token string) {
	_ = releaseScript.Run(ctx, l.client, []string{lockKey}, token).Err()
}
