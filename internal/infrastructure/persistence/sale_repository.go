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

// GormSaleRepository implements trade.SaleRepository using GORM.
// Reads are restricted to the actor in ctx; Find methods return (nil, nil)
// when no matching row exists.
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func (r *GormSaleRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var model models.SaleModel
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

// FindBySaleNumber finds a sale by its sale number
func (r *GormSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*trade.Sale, error) {
	var model models.SaleModel
	err := ownerscope.Apply(ctx, r.conn(ctx)).
		First(&model, "sale_number = ?", saleNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all sales visible to the actor with pagination
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	var saleModels []models.SaleModel
	query := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.SaleModel{}))
	query = applyPagination(query, filter)

	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}
	sales := make([]trade.Sale, len(saleModels))
	for i, model := range saleModels {
		sales[i] = *model.ToDomain()
	}
	return sales, nil
}

// Save inserts or updates a sale, stamping the actor's scope on creation
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	ownerscope.Stamp(ctx, &sale.OwnedAggregateRoot)
	return r.conn(ctx).Save(models.SaleModelFromDomain(sale)).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *trade.Sale) error {
	model := models.SaleModelFromDomain(sale)
	result := r.conn(ctx).
		Model(model).
		Where("id = ? AND version = ?", sale.ID, sale.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
	}
	return nil
}

// Count counts sales visible to the actor
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.SaleModel{})).
		Count(&count).Error
	return count, err
}

// applyPagination applies page/size and ordering from a shared filter
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	if filter.OrderDir == "desc" || filter.OrderDir == "" {
		orderBy += " DESC"
	}
	query = query.Order(orderBy)

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}
	return query
}
