package investment

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnStatus represents the payout status of an accrued return
type ReturnStatus string

const (
	ReturnStatusPending ReturnStatus = "PENDING"
	ReturnStatusPaid    ReturnStatus = "PAID"
)

// IsValid checks if the status is a valid ReturnStatus
func (s ReturnStatus) IsValid() bool {
	return s == ReturnStatusPending || s == ReturnStatusPaid
}

// InvestmentReturn is one accrued monthly profit entry. At most one return
// exists per (investment, period end); the accrual job relies on this to stay
// idempotent across reruns.
type InvestmentReturn struct {
	shared.OwnedAggregateRoot
	InvestmentID      uuid.UUID       `json:"investment_id"`
	PeriodEnd         time.Time       `json:"period_end"`
	PrincipalSnapshot decimal.Decimal `json:"principal_snapshot"`
	ProfitRate        decimal.Decimal `json:"profit_rate"`
	ProfitAmount      decimal.Decimal `json:"profit_amount"`
	Status            ReturnStatus    `json:"status"`
	PaidAt            *time.Time      `json:"paid_at"`
}

// NewInvestmentReturn snapshots the investment's principal and rate and
// records the computed profit for the period ending at periodEnd.
func NewInvestmentReturn(inv *Investment, periodEnd time.Time) (*InvestmentReturn, error) {
	if inv == nil {
		return nil, shared.NewDomainError("INVALID_INVESTMENT", "Investment cannot be nil")
	}

	return &InvestmentReturn{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(inv.GetOwnerID()),
		InvestmentID:       inv.ID,
		PeriodEnd:          periodEnd,
		PrincipalSnapshot:  inv.CurrentPrincipal,
		ProfitRate:         inv.ProfitRate,
		ProfitAmount:       inv.ComputeProfit(),
		Status:             ReturnStatusPending,
	}, nil
}

// MarkPaid records that the return has been paid out to the investor
func (r *InvestmentReturn) MarkPaid() error {
	if r.Status == ReturnStatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "Return has already been paid")
	}
	now := time.Now()
	r.Status = ReturnStatusPaid
	r.PaidAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}
