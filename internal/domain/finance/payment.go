package finance

import (
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a payment record
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

// Payment is an immutable record of one money movement. The sign convention
// is positive for incoming money (sale installments) and negative for
// outgoing money (purchase installments).
type Payment struct {
	shared.OwnedAggregateRoot
	Reference     string                      `json:"reference"`
	Amount        decimal.Decimal             `json:"amount"`
	PaymentDate   time.Time                   `json:"payment_date"`
	AccountID     uuid.UUID                   `json:"account_id"`
	SourceType    trade.InstallmentSourceType `json:"source_type"`
	SourceID      uuid.UUID                   `json:"source_id"`
	InstallmentID uuid.UUID                   `json:"installment_id"`
	Status        PaymentStatus               `json:"status"`
}

// NewInstallmentPayment creates a completed payment record for an installment.
// For sale installments the stored amount is positive, for purchase
// installments it is negated (money leaving the account).
func NewInstallmentPayment(
	ownerID uuid.UUID,
	installment *trade.Installment,
	amount valueobject.Money,
	paymentDate time.Time,
	accountID uuid.UUID,
) (*Payment, error) {
	if installment == nil {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT", "Installment cannot be nil")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}

	signed := amount.Amount()
	if installment.SourceType == trade.InstallmentSourcePurchase {
		signed = signed.Neg()
	}

	return &Payment{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Reference:          GeneratePaymentReference(installment.ID),
		Amount:             signed,
		PaymentDate:        paymentDate,
		AccountID:          accountID,
		SourceType:         installment.SourceType,
		SourceID:           installment.SourceID,
		InstallmentID:      installment.ID,
		Status:             PaymentStatusCompleted,
	}, nil
}

// GeneratePaymentReference builds a reference of the form
// PI-{installmentID}-{uniqueSuffix}
func GeneratePaymentReference(installmentID uuid.UUID) string {
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("PI-%s-%s", installmentID, suffix)
}

// IsIncoming returns true if the payment brings money into the account
func (p *Payment) IsIncoming() bool {
	return p.Amount.IsPositive()
}

// GetAmountMoney returns the signed amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBDT(p.Amount)
}
