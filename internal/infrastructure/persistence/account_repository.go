package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"github.com/retailpos/backend/internal/infrastructure/persistence/ownerscope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements finance.AccountRepository using GORM.
// Reads are restricted to the actor in ctx; Find methods return (nil, nil)
// when no matching row exists.
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

func (r *GormAccountRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Account, error) {
	var model models.AccountModel
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

// FindAll finds all accounts visible to the actor with pagination
func (r *GormAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Account, error) {
	var accountModels []models.AccountModel
	query := ownerscope.Apply(ctx, r.conn(ctx).Model(&models.AccountModel{}))
	query = applyPagination(query, filter)

	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]finance.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// Save inserts or updates an account, stamping the actor's scope on creation
func (r *GormAccountRepository) Save(ctx context.Context, account *finance.Account) error {
	ownerscope.Stamp(ctx, &account.OwnedAggregateRoot)
	return r.conn(ctx).Save(models.AccountModelFromDomain(account)).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormAccountRepository) SaveWithLock(ctx context.Context, account *finance.Account) error {
	model := models.AccountModelFromDomain(account)
	result := r.conn(ctx).
		Model(model).
		Where("id = ? AND version = ?", account.ID, account.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
	}
	return nil
}
