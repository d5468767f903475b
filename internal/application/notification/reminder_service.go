package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/notification"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReminderWindowDays is how many days ahead of the due date reminders go out:
// installments due today, tomorrow and the day after are all reminded.
const ReminderWindowDays = 2

// ReminderService sends due reminders for upcoming installments. Reminders
// are keyed on the installment's due date, so an installment stays inside the
// window for three consecutive runs but is reminded exactly once; the unique
// (installment, notify date) constraint enforces this across reruns too.
type ReminderService struct {
	installmentRepo  trade.InstallmentRepository
	notificationRepo notification.NotificationRepository
	sender           notification.Sender
}

// NewReminderService creates a new ReminderService
func NewReminderService(
	installmentRepo trade.InstallmentRepository,
	notificationRepo notification.NotificationRepository,
	sender notification.Sender,
) *ReminderService {
	return &ReminderService{
		installmentRepo:  installmentRepo,
		notificationRepo: notificationRepo,
		sender:           sender,
	}
}

// ReminderRunResult summarizes one reminder run
type ReminderRunResult struct {
	RunDate    time.Time `json:"run_date"`
	Candidates int       `json:"candidates"`
	Sent       int       `json:"sent"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
}

// SendDueReminders reminds every due installment whose due date falls within
// the next ReminderWindowDays days, today included. Already-reminded
// installments are skipped; a delivery failure on one never blocks the rest.
func (s *ReminderService) SendDueReminders(ctx context.Context, today time.Time) (*ReminderRunResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "notification", "send_due_reminders")
	defer span.End()

	runDate := dateOnly(today)
	telemetry.SetAttribute(span, "run_date", runDate.Format("2006-01-02"))

	log := logger.L(ctx)

	from := runDate
	to := runDate.AddDate(0, 0, ReminderWindowDays)
	installments, err := s.installmentRepo.SystemFindDueBetween(ctx, from, to)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list due installments: %w", err)
	}

	result := &ReminderRunResult{RunDate: runDate, Candidates: len(installments)}
	for i := range installments {
		inst := &installments[i]
		if !inst.IsDue() {
			result.Skipped++
			continue
		}

		sent, err := s.remindOne(ctx, inst)
		if err != nil {
			result.Failed++
			log.Error("installment reminder failed",
				zap.String("installment_id", inst.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if sent {
			result.Sent++
		} else {
			result.Skipped++
		}
	}

	log.Info("due reminder run finished",
		zap.String("run_date", runDate.Format("2006-01-02")),
		zap.Int("candidates", result.Candidates),
		zap.Int("sent", result.Sent),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

// remindOne creates and delivers one reminder, reporting false when a
// reminder for the installment's due date already exists. Dedup runs on the
// due date, not the run date, so earlier runs of the window suppress later
// ones.
func (s *ReminderService) remindOne(ctx context.Context, inst *trade.Installment) (bool, error) {
	dueDate := dateOnly(inst.DueDate)
	existing, err := s.notificationRepo.FindByInstallmentAndDate(ctx, inst.ID, dueDate)
	if err != nil {
		return false, fmt.Errorf("failed to check existing notification: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	n, err := notification.NewInstallmentDueNotification(inst)
	if err != nil {
		return false, err
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		// A concurrent run won the insert race for this due date.
		if errors.Is(err, shared.ErrAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create notification: %w", err)
	}

	if err := s.sender.Send(ctx, n); err != nil {
		n.MarkFailed()
		if saveErr := s.notificationRepo.Save(ctx, n); saveErr != nil {
			return false, fmt.Errorf("failed to record delivery failure: %w", saveErr)
		}
		return false, fmt.Errorf("failed to send notification: %w", err)
	}

	n.MarkSent()
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return false, fmt.Errorf("failed to record delivery: %w", err)
	}
	return true, nil
}

// ListNotifications lists notifications visible to the actor
func (s *ReminderService) ListNotifications(ctx context.Context, filter notification.NotificationFilter) ([]notification.Notification, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "notification", "list_notifications")
	defer span.End()

	notifications, err := s.notificationRepo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
