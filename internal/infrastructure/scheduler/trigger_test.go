package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLock struct {
	acquired  bool
	acquireOK bool
	released  int32
}

func (l *stubLock) Acquire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	l.acquired = true
	return l.acquireOK, nil
}

func (l *stubLock) Release(_ context.Context, _ string) error {
	atomic.AddInt32(&l.released, 1)
	return nil
}

func TestCronTriggerRun(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 23, 30, 0, 0, time.UTC)

	t.Run("runs the job under the lock", func(t *testing.T) {
		lock := &stubLock{acquireOK: true}
		var ran int32
		trigger := NewCronTrigger("test_job", TriggerConfig{LockTTL: time.Minute}, nil,
			func(_ context.Context, jobNow time.Time) error {
				atomic.AddInt32(&ran, 1)
				assert.Equal(t, now, jobNow)
				return nil
			}, lock, zap.NewNop())

		trigger.Run(ctx, now)

		assert.Equal(t, int32(1), ran)
		assert.True(t, lock.acquired)
		assert.Equal(t, int32(1), lock.released)
	})

	t.Run("skips when another instance holds the lock", func(t *testing.T) {
		lock := &stubLock{acquireOK: false}
		var ran int32
		trigger := NewCronTrigger("test_job", TriggerConfig{LockTTL: time.Minute}, nil,
			func(_ context.Context, _ time.Time) error {
				atomic.AddInt32(&ran, 1)
				return nil
			}, lock, zap.NewNop())

		trigger.Run(ctx, now)

		assert.Equal(t, int32(0), ran)
		assert.Equal(t, int32(0), lock.released)
	})

	t.Run("releases the lock when the job fails", func(t *testing.T) {
		lock := &stubLock{acquireOK: true}
		trigger := NewCronTrigger("test_job", TriggerConfig{LockTTL: time.Minute}, nil,
			func(_ context.Context, _ time.Time) error {
				return errors.New("boom")
			}, lock, zap.NewNop())

		trigger.Run(ctx, now)

		assert.Equal(t, int32(1), lock.released)
	})

	t.Run("applies the job timeout", func(t *testing.T) {
		lock := &stubLock{acquireOK: true}
		trigger := NewCronTrigger("test_job", TriggerConfig{LockTTL: time.Minute, JobTimeout: time.Nanosecond}, nil,
			func(jobCtx context.Context, _ time.Time) error {
				select {
				case <-jobCtx.Done():
					return jobCtx.Err()
				case <-time.After(time.Second):
					return errors.New("timeout never fired")
				}
			}, lock, zap.NewNop())

		trigger.Run(ctx, now)

		assert.Equal(t, int32(1), lock.released)
	})
}

func TestCronTriggerStartStop(t *testing.T) {
	t.Run("start is idempotent and stop waits for the loop", func(t *testing.T) {
		lock := &stubLock{acquireOK: true}
		trigger := NewCronTrigger("test_job", TriggerConfig{
			CheckInterval: 10 * time.Millisecond,
			LockTTL:       time.Minute,
		}, nil, func(_ context.Context, _ time.Time) error { return nil }, lock, zap.NewNop())

		ctx := context.Background()
		require.NoError(t, trigger.Start(ctx))
		require.NoError(t, trigger.Start(ctx))

		stopCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		require.NoError(t, trigger.Stop(stopCtx))
		require.NoError(t, trigger.Stop(stopCtx))
	})
}
