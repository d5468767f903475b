package investment

import (
	"context"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvestmentFilter defines filtering options for investment queries
type InvestmentFilter struct {
	shared.Filter
	Status       *InvestmentStatus
	InvestorName *string
}

// InvestmentRepository defines the interface for investment persistence.
// Find operations apply the owner/outlet scope of the actor carried in ctx.
type InvestmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Investment, error)
	FindAll(ctx context.Context, filter InvestmentFilter) ([]Investment, error)
	Save(ctx context.Context, inv *Investment) error
	SaveWithLock(ctx context.Context, inv *Investment) error
	Count(ctx context.Context, filter InvestmentFilter) (int64, error)

	// SystemFindActive finds active investments across all owners. Used by
	// the accrual job, which runs without an actor and must bypass owner
	// scoping.
	SystemFindActive(ctx context.Context) ([]Investment, error)
}

// InvestmentReturnRepository defines the interface for return persistence.
// Create must fail with shared.ErrAlreadyExists when a return for the same
// (investment, period end) pair already exists.
type InvestmentReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InvestmentReturn, error)
	FindByInvestment(ctx context.Context, investmentID uuid.UUID) ([]InvestmentReturn, error)
	FindByPeriod(ctx context.Context, investmentID uuid.UUID, periodEnd time.Time) (*InvestmentReturn, error)
	Create(ctx context.Context, ret *InvestmentReturn) error
	Save(ctx context.Context, ret *InvestmentReturn) error
}
