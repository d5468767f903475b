package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/investment"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"github.com/retailpos/backend/internal/infrastructure/persistence/ownerscope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvestmentReturnRepository implements investment.InvestmentReturnRepository
// using GORM. Create maps the unique (investment_id, period_end) violation to
// shared.ErrAlreadyExists so the accrual job can treat a duplicate insert as
// already-processed work. Find methods return (nil, nil) when no matching row
// exists.
type GormInvestmentReturnRepository struct {
	db *gorm.DB
}

// NewGormInvestmentReturnRepository creates a new GormInvestmentReturnRepository
func NewGormInvestmentReturnRepository(db *gorm.DB) *GormInvestmentReturnRepository {
	return &GormInvestmentReturnRepository{db: db}
}

func (r *GormInvestmentReturnRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an investment return by its ID
func (r *GormInvestmentReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*investment.InvestmentReturn, error) {
	var model models.InvestmentReturnModel
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

// FindByInvestment finds all returns accrued for an investment
func (r *GormInvestmentReturnRepository) FindByInvestment(ctx context.Context, investmentID uuid.UUID) ([]investment.InvestmentReturn, error) {
	var returnModels []models.InvestmentReturnModel
	err := ownerscope.Apply(ctx, r.conn(ctx)).
		Where("investment_id = ?", investmentID).
		Order("period_end ASC").
		Find(&returnModels).Error
	if err != nil {
		return nil, err
	}
	returns := make([]investment.InvestmentReturn, len(returnModels))
	for i, model := range returnModels {
		returns[i] = *model.ToDomain()
	}
	return returns, nil
}

// FindByPeriod finds the return accrued for an investment in a given period.
// The accrual job queries without an actor, so no owner scope is applied.
func (r *GormInvestmentReturnRepository) FindByPeriod(ctx context.Context, investmentID uuid.UUID, periodEnd time.Time) (*investment.InvestmentReturn, error) {
	var model models.InvestmentReturnModel
	err := r.conn(ctx).
		First(&model, "investment_id = ? AND period_end = ?", investmentID, periodEnd).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts a new return. A second return for the same investment and
// period fails with shared.ErrAlreadyExists.
func (r *GormInvestmentReturnRepository) Create(ctx context.Context, ret *investment.InvestmentReturn) error {
	ownerscope.Stamp(ctx, &ret.OwnedAggregateRoot)
	err := r.conn(ctx).Create(models.InvestmentReturnModelFromDomain(ret)).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("return for investment %s period %s: %w",
			ret.InvestmentID, ret.PeriodEnd.Format("2006-01-02"), shared.ErrAlreadyExists)
	}
	return err
}

// Save updates an existing return
func (r *GormInvestmentReturnRepository) Save(ctx context.Context, ret *investment.InvestmentReturn) error {
	return r.conn(ctx).Save(models.InvestmentReturnModelFromDomain(ret)).Error
}
