package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/notification"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"github.com/retailpos/backend/internal/infrastructure/persistence/ownerscope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNotificationRepository implements notification.NotificationRepository
// using GORM. Create maps the unique (installment_id, notify_date) violation
// to shared.ErrAlreadyExists so the reminder job sends at most one reminder
// per installment per due date. Find methods return (nil, nil) when no
// matching row exists.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a notification by its ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var model models.NotificationModel
	err := ownerscope.Apply(ctx, r.conn(ctx)).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInstallmentAndDate finds the notification recorded for an installment
// on a given notify date. The reminder job queries without an actor, so no
// owner scope is applied.
func (r *GormNotificationRepository) FindByInstallmentAndDate(ctx context.Context, installmentID uuid.UUID, notifyDate time.Time) (*notification.Notification, error) {
	var model models.NotificationModel
	err := r.conn(ctx).
		First(&model, "installment_id = ? AND notify_date = ?", installmentID, notifyDate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds notifications visible to the actor with filtering
func (r *GormNotificationRepository) FindAll(ctx context.Context, filter notification.NotificationFilter) ([]notification.Notification, error) {
	var notificationModels []models.NotificationModel
	query := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.NotificationModel{}))
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, err
	}
	notifications := make([]notification.Notification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = *model.ToDomain()
	}
	return notifications, nil
}

// Create inserts a new notification. A second notification for the same
// installment and notify date fails with shared.ErrAlreadyExists.
func (r *GormNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	ownerscope.Stamp(ctx, &n.OwnedAggregateRoot)
	err := r.conn(ctx).Create(models.NotificationModelFromDomain(n)).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("reminder for installment %s on %s: %w",
			n.InstallmentID, n.NotifyDate.Format("2006-01-02"), shared.ErrAlreadyExists)
	}
	return err
}

// Save updates an existing notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.conn(ctx).Save(models.NotificationModelFromDomain(n)).Error
}
