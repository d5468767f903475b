package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/investment"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"github.com/retailpos/backend/internal/infrastructure/persistence/ownerscope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvestmentRepository implements investment.InvestmentRepository using
// GORM. Reads are restricted to the actor in ctx; Find methods return
// (nil, nil) when no matching row exists. SystemFindActive bypasses the owner
// scope for the accrual job.
type GormInvestmentRepository struct {
	db *gorm.DB
}

// NewGormInvestmentRepository creates a new GormInvestmentRepository
func NewGormInvestmentRepository(db *gorm.DB) *GormInvestmentRepository {
	return &GormInvestmentRepository{db: db}
}

func (r *GormInvestmentRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an investment by its ID
func (r *GormInvestmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*investment.Investment, error) {
	var model models.InvestmentModel
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

// FindAll finds investments visible to the actor with filtering
func (r *GormInvestmentRepository) FindAll(ctx context.Context, filter investment.InvestmentFilter) ([]investment.Investment, error) {
	var investmentModels []models.InvestmentModel
	query := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.InvestmentModel{}))
	query = r.applyFilter(query, filter)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&investmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainInvestments(investmentModels), nil
}

// Save inserts or updates an investment, stamping the actor's scope on creation
func (r *GormInvestmentRepository) Save(ctx context.Context, inv *investment.Investment) error {
	ownerscope.Stamp(ctx, &inv.OwnedAggregateRoot)
	return r.conn(ctx).Save(models.InvestmentModelFromDomain(inv)).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormInvestmentRepository) SaveWithLock(ctx context.Context, inv *investment.Investment) error {
	model := models.InvestmentModelFromDomain(inv)
	result := r.conn(ctx).
		Model(model).
		Where("id = ? AND version = ?", inv.ID, inv.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
	}
	return nil
}

// Count counts investments visible to the actor
func (r *GormInvestmentRepository) Count(ctx context.Context, filter investment.InvestmentFilter) (int64, error) {
	var count int64
	query := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.InvestmentModel{}))
	query = r.applyFilter(query, filter)
	err := query.Count(&count).Error
	return count, err
}

// SystemFindActive finds active investments across all owners. No owner scope
// is applied.
func (r *GormInvestmentRepository) SystemFindActive(ctx context.Context) ([]investment.Investment, error) {
	var investmentModels []models.InvestmentModel
	err := r.conn(ctx).
		Where("status = ?", investment.InvestmentStatusActive).
		Order("start_date ASC").
		Find(&investmentModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainInvestments(investmentModels), nil
}

func (r *GormInvestmentRepository) applyFilter(query *gorm.DB, filter investment.InvestmentFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.InvestorName != nil {
		query = query.Where("investor_name ILIKE ?", "%"+*filter.InvestorName+"%")
	}
	return query
}

func toDomainInvestments(investmentModels []models.InvestmentModel) []investment.Investment {
	investments := make([]investment.Investment, len(investmentModels))
	for i, model := range investmentModels {
		investments[i] = *model.ToDomain()
	}
	return investments
}
