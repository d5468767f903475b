package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"github.com/retailpos/backend/internal/infrastructure/persistence/ownerscope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements trade.PurchaseRepository using GORM.
// Reads are restricted to the actor in ctx; Find methods return (nil, nil)
// when no matching row exists.
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

func (r *GormPurchaseRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var model models.PurchaseModel
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

// FindByPurchaseNumber finds a purchase by its purchase number
func (r *GormPurchaseRepository) FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*trade.Purchase, error) {
	var model models.PurchaseModel
	err := ownerscope.Apply(ctx, r.conn(ctx)).
		First(&model, "purchase_number = ?", purchaseNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all purchases visible to the actor with pagination
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	var purchaseModels []models.PurchaseModel
	query := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.PurchaseModel{}))
	query = applyPagination(query, filter)

	if err := query.Find(&purchaseModels).Error; err != nil {
		return nil, err
	}
	purchases := make([]trade.Purchase, len(purchaseModels))
	for i, model := range purchaseModels {
		purchases[i] = *model.ToDomain()
	}
	return purchases, nil
}

// Save inserts or updates a purchase, stamping the actor's scope on creation
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	ownerscope.Stamp(ctx, &purchase.OwnedAggregateRoot)
	return r.conn(ctx).Save(models.PurchaseModelFromDomain(purchase)).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormPurchaseRepository) SaveWithLock(ctx context.Context, purchase *trade.Purchase) error {
	model := models.PurchaseModelFromDomain(purchase)
	result := r.conn(ctx).
		Model(model).
		Where("id = ? AND version = ?", purchase.ID, purchase.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
	}
	return nil
}

// Count counts purchases visible to the actor
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.PurchaseModel{})).
		Count(&count).Error
	return count, err
}
