package investment

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentStatus represents the lifecycle status of an investment
type InvestmentStatus string

const (
	InvestmentStatusActive    InvestmentStatus = "ACTIVE"
	InvestmentStatusClosed    InvestmentStatus = "CLOSED"    // principal drawn down to zero
	InvestmentStatusCompleted InvestmentStatus = "COMPLETED" // reached its end date
)

// IsValid checks if the status is a valid InvestmentStatus
func (s InvestmentStatus) IsValid() bool {
	switch s {
	case InvestmentStatusActive, InvestmentStatusClosed, InvestmentStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of InvestmentStatus
func (s InvestmentStatus) String() string {
	return string(s)
}

// Investment is a principal placed with the business that accrues a monthly
// profit at a simple-interest rate. The monthly accrual job advances
// LastProfitDate one period at a time; profit for a period is computed from
// the principal as it stands when the period is processed.
type Investment struct {
	shared.OwnedAggregateRoot
	InvestorName     string           `json:"investor_name"`
	CurrentPrincipal decimal.Decimal  `json:"current_principal"`
	ProfitRate       decimal.Decimal  `json:"profit_rate"` // percent per month
	Status           InvestmentStatus `json:"status"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          *time.Time       `json:"end_date"`
	LastProfitDate   *time.Time       `json:"last_profit_date"`
	ClosedAt         *time.Time       `json:"closed_at"`
	CompletedAt      *time.Time       `json:"completed_at"`
}

// NewInvestment creates a new active investment
func NewInvestment(
	ownerID uuid.UUID,
	investorName string,
	principal decimal.Decimal,
	profitRate decimal.Decimal,
	startDate time.Time,
	endDate *time.Time,
) (*Investment, error) {
	if investorName == "" {
		return nil, shared.NewDomainError("INVALID_INVESTOR", "Investor name cannot be empty")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRINCIPAL", "Principal must be positive")
	}
	if profitRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Profit rate cannot be negative")
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_END_DATE", "End date cannot be before start date")
	}

	return &Investment{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		InvestorName:       investorName,
		CurrentPrincipal:   principal,
		ProfitRate:         profitRate,
		Status:             InvestmentStatusActive,
		StartDate:          startDate,
		EndDate:            endDate,
	}, nil
}

// IsActive returns true if the investment is still accruing
func (inv *Investment) IsActive() bool {
	return inv.Status == InvestmentStatusActive
}

// ComputeProfit returns the simple-interest profit for one period:
// round(principal * rate / 100, 2)
func (inv *Investment) ComputeProfit() decimal.Decimal {
	return inv.CurrentPrincipal.
		Mul(inv.ProfitRate).
		Div(decimal.NewFromInt(100)).
		Round(2)
}

// Close marks the investment closed (principal drawn down to zero)
func (inv *Investment) Close() {
	now := time.Now()
	inv.Status = InvestmentStatusClosed
	inv.ClosedAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()
}

// Complete marks the investment completed (past its end date)
func (inv *Investment) Complete() {
	now := time.Now()
	inv.Status = InvestmentStatusCompleted
	inv.CompletedAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()
}

// AdvanceProfitDate moves LastProfitDate forward to the given period end
func (inv *Investment) AdvanceProfitDate(periodEnd time.Time) {
	pe := periodEnd
	inv.LastProfitDate = &pe
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}
