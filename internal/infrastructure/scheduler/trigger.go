package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// JobFunc runs one job execution for the given trigger time.
type JobFunc func(ctx context.Context, now time.Time) error

// TriggerConfig holds the schedule for one cron trigger.
type TriggerConfig struct {
	// Hour and Minute are the wall-clock firing time in Location.
	Hour   int
	Minute int

	// Location is the timezone the firing time is evaluated in.
	Location *time.Location

	// CheckInterval is how often to check whether it is time to run.
	CheckInterval time.Duration

	// LockTTL bounds how long the cross-instance lock is held.
	LockTTL time.Duration

	// JobTimeout bounds a single job execution.
	JobTimeout time.Duration
}

// CronTrigger fires a job once a day at a fixed wall-clock time. A guard
// predicate can narrow firing further (the accrual trigger only fires on the
// last calendar day of the month), and a JobLock keeps multiple application
// instances from running the same job concurrently.
type CronTrigger struct {
	name   string
	config TriggerConfig
	guard  func(now time.Time) bool
	job    JobFunc
	lock   JobLock
	logger *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewCronTrigger creates a new cron trigger. A nil guard always fires.
func NewCronTrigger(
	name string,
	config TriggerConfig,
	guard func(now time.Time) bool,
	job JobFunc,
	lock JobLock,
	logger *zap.Logger,
) *CronTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &CronTrigger{
		name:   name,
		config: config,
		guard:  guard,
		job:    job,
		lock:   lock,
		logger: logger,
	}
}

// Start starts the trigger loop
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.String("job", c.name),
		zap.Int("hour", c.config.Hour),
		zap.Int("minute", c.config.Minute),
		zap.String("timezone", c.config.Location.String()),
	)
	return nil
}

// Stop stops the trigger loop, waiting for an in-flight run to finish
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped", zap.String("job", c.name))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

func (c *CronTrigger) checkAndTrigger(ctx context.Context) {
	now := time.Now().In(c.config.Location)
	currentDate := now.Format("2006-01-02")

	c.mu.Lock()
	if c.lastRunDate == currentDate {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if now.Hour() != c.config.Hour || now.Minute() != c.config.Minute {
		return
	}
	if c.guard != nil && !c.guard(now) {
		return
	}

	c.mu.Lock()
	c.lastRunDate = currentDate
	c.mu.Unlock()

	c.Run(ctx, now)
}

// Run executes the job once, under the cross-instance lock. Exposed for
// manual triggering.
func (c *CronTrigger) Run(ctx context.Context, now time.Time) {
	acquired, err := c.lock.Acquire(ctx, c.name, c.config.LockTTL)
	if err != nil {
		c.logger.Error("Failed to acquire job lock",
			zap.String("job", c.name),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		c.logger.Info("Job already running on another instance, skipping",
			zap.String("job", c.name),
		)
		return
	}
	defer func() {
		if err := c.lock.Release(ctx, c.name); err != nil {
			c.logger.Warn("Failed to release job lock",
				zap.String("job", c.name),
				zap.Error(err),
			)
		}
	}()

	jobCtx := ctx
	if c.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, c.config.JobTimeout)
		defer cancel()
	}

	c.logger.Info("Running job", zap.String("job", c.name))
	if err := c.job(jobCtx, now); err != nil {
		c.logger.Error("Job failed",
			zap.String("job", c.name),
			zap.Error(err),
		)
		return
	}
	c.logger.Info("Job finished", zap.String("job", c.name))
}
