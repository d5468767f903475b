package finance

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account holds a monetary balance mutated by payment postings.
// The balance must equal the sum of all payment amounts posted against the
// account, so the ledger can always be rebuilt by replay.
type Account struct {
	shared.OwnedAggregateRoot
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// NewAccount creates a new account with zero balance
func NewAccount(ownerID uuid.UUID, name string) (*Account, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	return &Account{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		Balance:            decimal.Zero,
	}, nil
}

// Credit increases the account balance by the given amount
func (a *Account) Credit(amount valueobject.Money) error {
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}
	a.Balance = a.Balance.Add(amount.Amount())
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Withdraw decreases the account balance by the given amount
func (a *Account) Withdraw(amount valueobject.Money) error {
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Withdraw amount must be positive")
	}
	a.Balance = a.Balance.Sub(amount.Amount())
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// GetBalanceMoney returns the balance as Money
func (a *Account) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyBDT(a.Balance)
}
