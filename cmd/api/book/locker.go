package book

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

const defaultLockWait = 2 * time.Second

// Locker hands out one exclusive lock per key. Unrelated keys never wait on each other.
// Entries live only while somebody holds or waits for them.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
	wait  time.Duration
}

type keyLock struct {
	sem  *semaphore.Weighted
	refs int
}

func NewLocker(wait time.Duration) *Locker {
	if wait <= 0 {
		wait = defaultLockWait
	}
	return &Locker{
		locks: make(map[string]*keyLock),
		wait:  wait,
	}
}

/*
Acquires the lock for key, waiting at most the configured bound. A timeout is reported as
ErrResponseBookBusy; a caller that abandons ctx gets ctx's error back.
*/
func (l *Locker) Lock(ctx context.Context, key string) (unlock func(), err error) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{sem: semaphore.NewWeighted(1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	if err := kl.sem.Acquire(waitCtx, 1); err != nil {
		l.release(key, kl, false)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrResponseBookBusy
		}
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(key, kl, true) })
	}, nil
}

func (l *Locker) release(key string, kl *keyLock, held bool) {
	if held {
		kl.sem.Release(1)
	}
	l.mu.Lock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()
}

/* Number of keys currently held or waited for. */
func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func bookKey(id uuid.UUID) string {
	return "book:" + id.String()
}

func loanKey(id uuid.UUID) string {
	return "loan:" + id.String()
}
