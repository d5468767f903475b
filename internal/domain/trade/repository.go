package trade

import (
	"context"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InstallmentFilter defines filtering options for installment queries
type InstallmentFilter struct {
	shared.Filter
	SourceType *InstallmentSourceType
	SourceID   *uuid.UUID
	Status     *InstallmentStatus
	DueFrom    *time.Time
	DueTo      *time.Time
}

// SaleRepository defines the interface for sale persistence.
// Find operations apply the owner/outlet scope of the actor carried in ctx.
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindBySaleNumber(ctx context.Context, saleNumber string) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)
	Save(ctx context.Context, sale *Sale) error
	SaveWithLock(ctx context.Context, sale *Sale) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PurchaseRepository defines the interface for purchase persistence
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)
	Save(ctx context.Context, purchase *Purchase) error
	SaveWithLock(ctx context.Context, purchase *Purchase) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// InstallmentRepository defines the interface for installment persistence
type InstallmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Installment, error)
	FindBySource(ctx context.Context, sourceType InstallmentSourceType, sourceID uuid.UUID) ([]Installment, error)
	FindAll(ctx context.Context, filter InstallmentFilter) ([]Installment, error)
	Save(ctx context.Context, installment *Installment) error
	SaveWithLock(ctx context.Context, installment *Installment) error
	Count(ctx context.Context, filter InstallmentFilter) (int64, error)

	// SystemFindDueBetween finds due installments across all owners with a due
	// date inside [from, to]. Used by the reminder job, which runs without an
	// actor and must bypass owner scoping.
	SystemFindDueBetween(ctx context.Context, from, to time.Time) ([]Installment, error)
}
