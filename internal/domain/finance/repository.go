package finance

import (
	"context"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	shared.Filter
	AccountID *uuid.UUID
	SourceID  *uuid.UUID
	FromDate  *time.Time
	ToDate    *time.Time
}

// AccountRepository defines the interface for account persistence.
// Find operations apply the owner/outlet scope of the actor carried in ctx.
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Account, error)
	Save(ctx context.Context, account *Account) error
	SaveWithLock(ctx context.Context, account *Account) error
}

// PaymentRepository defines the interface for payment persistence.
// Payments are append-only; there is no update or delete.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByInstallment(ctx context.Context, installmentID uuid.UUID) ([]Payment, error)
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, error)
	Create(ctx context.Context, payment *Payment) error
	Count(ctx context.Context, filter PaymentFilter) (int64, error)

	// SumByAccount replays the ledger for an account: the sum of all payment
	// amounts posted against it. Used to verify the account balance invariant.
	SumByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
}
