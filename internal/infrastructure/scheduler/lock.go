package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// JobLock serializes job runs across application instances. Acquire reports
// false when another instance already holds the lock.
type JobLock interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name string) error
}

// releaseScript deletes the lock only if this instance still owns it, so a
// slow run that outlived its TTL cannot release another instance's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisJobLock implements JobLock with a Redis SET NX key per job name.
type RedisJobLock struct {
	client     *redis.Client
	instanceID string
}

// NewRedisJobLock creates a new RedisJobLock
func NewRedisJobLock(client *redis.Client) *RedisJobLock {
	return &RedisJobLock{
		client:     client,
		instanceID: uuid.NewString(),
	}
}

func (l *RedisJobLock) key(name string) string {
	return "jobs:lock:" + name
}

// Acquire takes the lock for a job, expiring after ttl
func (l *RedisJobLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, l.key(name), l.instanceID, ttl).Result()
}

// Release frees the lock if this instance still holds it
func (l *RedisJobLock) Release(ctx context.Context, name string) error {
	return releaseScript.Run(ctx, l.client, []string{l.key(name)}, l.instanceID).Err()
}

// LocalJobLock implements JobLock in process memory. Used in tests and in
// single-instance deployments without Redis. Safe for concurrent use by
// multiple triggers.
type LocalJobLock struct {
	mu   sync.Mutex
	held map[string]time.Time
}

// NewLocalJobLock creates a new LocalJobLock
func NewLocalJobLock() *LocalJobLock {
	return &LocalJobLock{held: make(map[string]time.Time)}
}

// Acquire takes the lock for a job, expiring after ttl
func (l *LocalJobLock) Acquire(_ context.Context, name string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if expiry, ok := l.held[name]; ok && time.Now().Before(expiry) {
		return false, nil
	}
	l.held[name] = time.Now().Add(ttl)
	return true, nil
}

// Release frees the lock
func (l *LocalJobLock) Release(_ context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, name)
	return nil
}
