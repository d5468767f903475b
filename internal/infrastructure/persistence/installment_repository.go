package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"github.com/retailpos/backend/internal/infrastructure/persistence/ownerscope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInstallmentRepository implements trade.InstallmentRepository using GORM.
// Reads are restricted to the actor in ctx; Find methods return (nil, nil)
// when no matching row exists. SystemFindDueBetween bypasses the owner scope
// for the reminder job.
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GormInstallmentRepository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

func (r *GormInstallmentRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an installment by its ID
func (r *GormInstallmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Installment, error) {
	var model models.InstallmentModel
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

// FindBySource finds all installments attached to a sale or purchase
func (r *GormInstallmentRepository) FindBySource(ctx context.Context, sourceType trade.InstallmentSourceType, sourceID uuid.UUID) ([]trade.Installment, error) {
	var installmentModels []models.InstallmentModel
	err := ownerscope.Apply(ctx, r.conn(ctx)).
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		Order("due_date ASC").
		Find(&installmentModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainInstallments(installmentModels), nil
}

// FindAll finds installments visible to the actor with filtering
func (r *GormInstallmentRepository) FindAll(ctx context.Context, filter trade.InstallmentFilter) ([]trade.Installment, error) {
	var installmentModels []models.InstallmentModel
	query := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.InstallmentModel{}))
	query = r.applyFilter(query, filter)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&installmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainInstallments(installmentModels), nil
}

// Save inserts or updates an installment, stamping the actor's scope on creation
func (r *GormInstallmentRepository) Save(ctx context.Context, installment *trade.Installment) error {
	ownerscope.Stamp(ctx, &installment.OwnedAggregateRoot)
	return r.conn(ctx).Save(models.InstallmentModelFromDomain(installment)).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormInstallmentRepository) SaveWithLock(ctx context.Context, installment *trade.Installment) error {
	model := models.InstallmentModelFromDomain(installment)
	result := r.conn(ctx).
		Model(model).
		Where("id = ? AND version = ?", installment.ID, installment.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
	}
	return nil
}

// Count counts installments visible to the actor
func (r *GormInstallmentRepository) Count(ctx context.Context, filter trade.InstallmentFilter) (int64, error) {
	var count int64
	query := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.InstallmentModel{}))
	query = r.applyFilter(query, filter)
	err := query.Count(&count).Error
	return count, err
}

// SystemFindDueBetween finds due installments across all owners with a due
// date inside [from, to]. No owner scope is applied.
func (r *GormInstallmentRepository) SystemFindDueBetween(ctx context.Context, from, to time.Time) ([]trade.Installment, error) {
	var installmentModels []models.InstallmentModel
	err := r.conn(ctx).
		Where("status = ? AND due_date >= ? AND due_date <= ?", trade.InstallmentStatusDue, from, to).
		Order("due_date ASC").
		Find(&installmentModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainInstallments(installmentModels), nil
}

func (r *GormInstallmentRepository) applyFilter(query *gorm.DB, filter trade.InstallmentFilter) *gorm.DB {
	if filter.SourceType != nil {
		query = query.Where("source_type = ?", *filter.SourceType)
	}
	if filter.SourceID != nil {
		query = query.Where("source_id = ?", *filter.SourceID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}
	return query
}

func toDomainInstallments(installmentModels []models.InstallmentModel) []trade.Installment {
	installments := make([]trade.Installment, len(installmentModels))
	for i, model := range installmentModels {
		installments[i] = *model.ToDomain()
	}
	return installments
}
