package trade

import (
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is a purchase document paid off through installments.
// It tracks money owed to a supplier; the payment semantics mirror Sale.
type Purchase struct {
	shared.OwnedAggregateRoot
	PurchaseNumber string          `json:"purchase_number"`
	SupplierID     *uuid.UUID      `json:"supplier_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	DueAmount      decimal.Decimal `json:"due_amount"`
	Status         DocumentStatus  `json:"status"`
	PurchaseDate   time.Time       `json:"purchase_date"`
	PaidAt         *time.Time      `json:"paid_at"`
}

// NewPurchase creates a new purchase document
func NewPurchase(
	ownerID uuid.UUID,
	purchaseNumber string,
	supplierID *uuid.UUID,
	totalAmount valueobject.Money,
	purchaseDate time.Time,
) (*Purchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_PURCHASE_NUMBER", "Purchase number cannot be empty")
	}
	if totalAmount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}

	return &Purchase{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		PurchaseNumber:     purchaseNumber,
		SupplierID:         supplierID,
		TotalAmount:        totalAmount.Amount(),
		PaidAmount:         decimal.Zero,
		DueAmount:          totalAmount.Amount(),
		Status:             DocumentStatusDue,
		PurchaseDate:       purchaseDate,
	}, nil
}

// ApplyPayment applies an installment payment to the purchase.
// Same semantics as Sale.ApplyPayment, including the paid tolerance band.
func (p *Purchase) ApplyPayment(amount valueobject.Money) error {
	if p.Status == DocumentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Purchase is already fully paid")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(p.DueAmount) {
		return shared.NewDomainError("EXCEEDS_DUE", fmt.Sprintf(
			"Payment amount %s exceeds due amount %s",
			amount.Amount().StringFixed(2), p.DueAmount.StringFixed(2)))
	}

	p.PaidAmount = p.PaidAmount.Add(amount.Amount())
	p.DueAmount = p.DueAmount.Sub(amount.Amount())

	if withinPaidTolerance(p.DueAmount) {
		now := time.Now()
		p.Status = DocumentStatusPaid
		p.PaidAt = &now
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsPaid returns true if the purchase is fully paid
func (p *Purchase) IsPaid() bool {
	return p.Status == DocumentStatusPaid
}
