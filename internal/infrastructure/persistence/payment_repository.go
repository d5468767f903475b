package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"github.com/retailpos/backend/internal/infrastructure/persistence/ownerscope"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements finance.PaymentRepository using GORM.
// Payments are append-only; Find methods return (nil, nil) when no matching
// row exists.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	var model models.PaymentModel
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

// FindByInstallment finds all payments posted against an installment
func (r *GormPaymentRepository) FindByInstallment(ctx context.Context, installmentID uuid.UUID) ([]finance.Payment, error) {
	var paymentModels []models.PaymentModel
	err := ownerscope.Apply(ctx, r.conn(ctx)).
		Where("installment_id = ?", installmentID).
		Order("payment_date ASC").
		Find(&paymentModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindAll finds payments visible to the actor with filtering
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter finance.PaymentFilter) ([]finance.Payment, error) {
	var paymentModels []models.PaymentModel
	query := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.PaymentModel{}))
	query = r.applyFilter(query, filter)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// Create inserts a new payment, stamping the actor's scope. A duplicate
// payment reference fails with shared.ErrAlreadyExists.
func (r *GormPaymentRepository) Create(ctx context.Context, payment *finance.Payment) error {
	ownerscope.Stamp(ctx, &payment.OwnedAggregateRoot)
	err := r.conn(ctx).Create(models.PaymentModelFromDomain(payment)).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("payment %s: %w", payment.Reference, shared.ErrAlreadyExists)
	}
	return err
}

// Count counts payments visible to the actor
func (r *GormPaymentRepository) Count(ctx context.Context, filter finance.PaymentFilter) (int64, error) {
	var count int64
	query := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.PaymentModel{}))
	query = r.applyFilter(query, filter)
	err := query.Count(&count).Error
	return count, err
}

// SumByAccount replays the ledger for an account
func (r *GormPaymentRepository) SumByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.PaymentModel{})).
		Where("account_id = ?", accountID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter finance.PaymentFilter) *gorm.DB {
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.SourceID != nil {
		query = query.Where("source_id = ?", *filter.SourceID)
	}
	if filter.FromDate != nil {
		query = query.Where("payment_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("payment_date <= ?", *filter.ToDate)
	}
	return query
}

func toDomainPayments(paymentModels []models.PaymentModel) []finance.Payment {
	payments := make([]finance.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}
