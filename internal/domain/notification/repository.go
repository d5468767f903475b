package notification

import (
	"context"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NotificationFilter defines filtering options for notification queries
type NotificationFilter struct {
	shared.Filter
	Type   *NotificationType
	Status *NotificationStatus
}

// NotificationRepository defines the interface for notification persistence.
// Create must fail with shared.ErrAlreadyExists when a notification for the
// same (installment, notify date) pair already exists.
type NotificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindByInstallmentAndDate(ctx context.Context, installmentID uuid.UUID, notifyDate time.Time) (*Notification, error)
	FindAll(ctx context.Context, filter NotificationFilter) ([]Notification, error)
	Create(ctx context.Context, n *Notification) error
	Save(ctx context.Context, n *Notification) error
}
