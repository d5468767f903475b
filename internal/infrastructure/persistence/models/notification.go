package models

import (
	"time"

	"github.com/retailpos/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// NotificationModel is the persistence model for the Notification entity.
// The unique (installment_id, notify_date) index keeps each installment
// reminded at most once per due date.
type NotificationModel struct {
	OwnedAggregateModel
	Type          notification.NotificationType   `gorm:"type:varchar(30);not null;index"`
	InstallmentID uuid.UUID                       `gorm:"type:uuid;not null;uniqueIndex:idx_notification_installment_date,priority:1"`
	NotifyDate    time.Time                       `gorm:"type:date;not null;uniqueIndex:idx_notification_installment_date,priority:2"`
	Message       string                          `gorm:"type:text;not null"`
	Status        notification.NotificationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	SentAt        *time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification entity.
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Type:               m.Type,
		InstallmentID:      m.InstallmentID,
		NotifyDate:         m.NotifyDate,
		Message:            m.Message,
		Status:             m.Status,
		SentAt:             m.SentAt,
	}
}

// FromDomain populates the persistence model from a domain Notification entity.
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainOwnedAggregateRoot(n.OwnedAggregateRoot)
	m.Type = n.Type
	m.InstallmentID = n.InstallmentID
	m.NotifyDate = n.NotifyDate
	m.Message = n.Message
	m.Status = n.Status
	m.SentAt = n.SentAt
}

// NotificationModelFromDomain creates a persistence model from a domain Notification entity.
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}
