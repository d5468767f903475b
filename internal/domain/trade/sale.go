package trade

import (
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentStatus represents the payment status of a sale or purchase document
type DocumentStatus string

const (
	DocumentStatusDue  DocumentStatus = "DUE"
	DocumentStatusPaid DocumentStatus = "PAID"
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	return s == DocumentStatusDue || s == DocumentStatusPaid
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// Sale is a sales document paid off through installments.
// It tracks money owed by a customer; PaidAmount + DueAmount stays constant
// across payments.
type Sale struct {
	shared.OwnedAggregateRoot
	SaleNumber  string          `json:"sale_number"`
	CustomerID  *uuid.UUID      `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	DueAmount   decimal.Decimal `json:"due_amount"`
	Status      DocumentStatus  `json:"status"`
	SaleDate    time.Time       `json:"sale_date"`
	PaidAt      *time.Time      `json:"paid_at"`
}

// NewSale creates a new sale document
func NewSale(
	ownerID uuid.UUID,
	saleNumber string,
	customerID *uuid.UUID,
	totalAmount valueobject.Money,
	saleDate time.Time,
) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if totalAmount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}

	return &Sale{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		SaleNumber:         saleNumber,
		CustomerID:         customerID,
		TotalAmount:        totalAmount.Amount(),
		PaidAmount:         decimal.Zero,
		DueAmount:          totalAmount.Amount(),
		Status:             DocumentStatusDue,
		SaleDate:           saleDate,
	}, nil
}

// ApplyPayment applies an installment payment to the sale.
// The increment of PaidAmount and the decrement of DueAmount come from the
// same amount, so the two totals never drift apart. When the remaining due
// lands inside the paid tolerance band the sale flips to PAID.
func (s *Sale) ApplyPayment(amount valueobject.Money) error {
	if s.Status == DocumentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Sale is already fully paid")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(s.DueAmount) {
		return shared.NewDomainError("EXCEEDS_DUE", fmt.Sprintf(
			"Payment amount %s exceeds due amount %s",
			amount.Amount().StringFixed(2), s.DueAmount.StringFixed(2)))
	}

	s.PaidAmount = s.PaidAmount.Add(amount.Amount())
	s.DueAmount = s.DueAmount.Sub(amount.Amount())

	if withinPaidTolerance(s.DueAmount) {
		now := time.Now()
		s.Status = DocumentStatusPaid
		s.PaidAt = &now
	}

	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsPaid returns true if the sale is fully paid
func (s *Sale) IsPaid() bool {
	return s.Status == DocumentStatusPaid
}
