package notification

import (
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// NotificationType distinguishes the kinds of notifications the system sends
type NotificationType string

const (
	NotificationTypeInstallmentDue NotificationType = "INSTALLMENT_DUE"
)

// NotificationStatus represents delivery state
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification is a reminder queued for delivery. At most one notification
// exists per (installment, due date); the reminder job relies on this so a
// window that covers the same due date on several days reminds only once.
type Notification struct {
	shared.OwnedAggregateRoot
	Type          NotificationType   `json:"type"`
	InstallmentID uuid.UUID          `json:"installment_id"`
	NotifyDate    time.Time          `json:"notify_date"`
	Message       string             `json:"message"`
	Status        NotificationStatus `json:"status"`
	SentAt        *time.Time         `json:"sent_at"`
}

// NewInstallmentDueNotification builds the reminder for one installment. The
// notify date is always the installment's due date, so the same bucket is hit
// no matter which day of the reminder window creates it. The message carries
// the source document and amount so the delivery channel needs no further
// lookups.
func NewInstallmentDueNotification(inst *trade.Installment) (*Notification, error) {
	if inst == nil {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT", "Installment cannot be nil")
	}

	due := inst.DueDate
	return &Notification{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(inst.GetOwnerID()),
		Type:               NotificationTypeInstallmentDue,
		InstallmentID:      inst.ID,
		NotifyDate:         time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location()),
		Message:            FormatDueMessage(inst),
		Status:             NotificationStatusPending,
	}, nil
}

// FormatDueMessage renders the reminder text for a due installment
func FormatDueMessage(inst *trade.Installment) string {
	kind := "sale"
	if inst.SourceType == trade.InstallmentSourcePurchase {
		kind = "purchase"
	}
	return fmt.Sprintf(
		"Installment of %s for %s %s is due on %s",
		inst.DueAmount.StringFixed(2),
		kind,
		inst.SourceID,
		inst.DueDate.Format("2006-01-02"),
	)
}

// MarkSent records a successful delivery
func (n *Notification) MarkSent() {
	now := time.Now()
	n.Status = NotificationStatusSent
	n.SentAt = &now
	n.UpdatedAt = now
	n.IncrementVersion()
}

// MarkFailed records a failed delivery attempt
func (n *Notification) MarkFailed() {
	n.Status = NotificationStatusFailed
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
}
