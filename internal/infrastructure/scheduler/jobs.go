package scheduler

import (
	"context"
	"time"

	appinvestment "github.com/retailpos/backend/internal/application/investment"
	appnotification "github.com/retailpos/backend/internal/application/notification"
	"github.com/retailpos/backend/internal/domain/investment"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Job names, also used as lock keys.
const (
	JobMonthlyAccrual = "investment_monthly_accrual"
	JobDueReminders   = "installment_due_reminders"
)

// NewAccrualTrigger builds the monthly profit accrual trigger. It fires at
// the configured time but only on the last calendar day of the month, and
// accrues for the period ending on that day.
func NewAccrualTrigger(
	cfg config.JobsConfig,
	service *appinvestment.AccrualService,
	lock JobLock,
	logger *zap.Logger,
) *CronTrigger {
	location := mustLocation(cfg.Timezone)

	guard := func(now time.Time) bool {
		return now.Day() == investment.LastDayOfMonth(now).Day()
	}

	job := func(ctx context.Context, now time.Time) error {
		periodEnd := investment.LastDayOfMonth(now)
		_, err := service.ProcessMonthlyReturns(ctx, periodEnd)
		return err
	}

	return NewCronTrigger(JobMonthlyAccrual, TriggerConfig{
		Hour:       cfg.AccrualHour,
		Minute:     cfg.AccrualMinute,
		Location:   location,
		LockTTL:    cfg.LockTTL,
		JobTimeout: cfg.JobTimeout,
	}, guard, job, lock, logger)
}

// NewReminderTrigger builds the daily installment due reminder trigger.
func NewReminderTrigger(
	cfg config.JobsConfig,
	service *appnotification.ReminderService,
	lock JobLock,
	logger *zap.Logger,
) *CronTrigger {
	location := mustLocation(cfg.Timezone)

	job := func(ctx context.Context, now time.Time) error {
		_, err := service.SendDueReminders(ctx, now)
		return err
	}

	return NewCronTrigger(JobDueReminders, TriggerConfig{
		Hour:       cfg.ReminderHour,
		Minute:     cfg.ReminderMinute,
		Location:   location,
		LockTTL:    cfg.LockTTL,
		JobTimeout: cfg.JobTimeout,
	}, nil, job, lock, logger)
}

// mustLocation resolves a timezone name validated earlier by config.Load.
func mustLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}
