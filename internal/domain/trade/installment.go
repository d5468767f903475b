package trade

import (
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstallmentStatus represents the status of an installment
type InstallmentStatus string

const (
	InstallmentStatusDue  InstallmentStatus = "DUE"
	InstallmentStatusPaid InstallmentStatus = "PAID"
)

// IsValid checks if the status is a valid InstallmentStatus
func (s InstallmentStatus) IsValid() bool {
	return s == InstallmentStatusDue || s == InstallmentStatusPaid
}

// String returns the string representation of InstallmentStatus
func (s InstallmentStatus) String() string {
	return string(s)
}

// InstallmentSourceType identifies the document an installment belongs to
type InstallmentSourceType string

const (
	InstallmentSourceSale     InstallmentSourceType = "SALE"
	InstallmentSourcePurchase InstallmentSourceType = "PURCHASE"
)

// IsValid checks if the source type is valid
func (s InstallmentSourceType) IsValid() bool {
	return s == InstallmentSourceSale || s == InstallmentSourcePurchase
}

// PaidTolerance is the residual due amount below which a document counts as
// fully paid. A due amount in [0, PaidTolerance] flips the status to PAID.
// The band absorbs rounding residue from installment splits and must not be
// tightened or loosened.
var PaidTolerance = decimal.NewFromInt(1)

// withinPaidTolerance reports whether a due amount falls inside the paid band
func withinPaidTolerance(due decimal.Decimal) bool {
	return due.GreaterThanOrEqual(decimal.Zero) && due.LessThanOrEqual(PaidTolerance)
}

// Installment is a scheduled partial payment against a sale or purchase.
// PaidAmount + DueAmount stays constant across payments.
type Installment struct {
	shared.OwnedAggregateRoot
	InstallmentNumber string                `json:"installment_number"`
	SourceType        InstallmentSourceType `json:"source_type"`
	SourceID          uuid.UUID             `json:"source_id"`
	Amount            decimal.Decimal       `json:"amount"`
	PaidAmount        decimal.Decimal       `json:"paid_amount"`
	DueAmount         decimal.Decimal       `json:"due_amount"`
	DueDate           time.Time             `json:"due_date"`
	Status            InstallmentStatus     `json:"status"`
	PaidAt            *time.Time            `json:"paid_at"`
}

// NewInstallment creates a new installment for a sale or purchase
func NewInstallment(
	ownerID uuid.UUID,
	installmentNumber string,
	sourceType InstallmentSourceType,
	sourceID uuid.UUID,
	amount valueobject.Money,
	dueDate time.Time,
) (*Installment, error) {
	if installmentNumber == "" {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT_NUMBER", "Installment number cannot be empty")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Source type is not valid")
	}
	if sourceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SOURCE_ID", "Source ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Installment amount must be positive")
	}

	return &Installment{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		InstallmentNumber:  installmentNumber,
		SourceType:         sourceType,
		SourceID:           sourceID,
		Amount:             amount.Amount(),
		PaidAmount:         decimal.Zero,
		DueAmount:          amount.Amount(),
		DueDate:            dueDate,
		Status:             InstallmentStatusDue,
	}, nil
}

// ApplyPayment records a payment against the installment.
// PaidAmount and DueAmount move by the same amount; when the remaining due
// lands inside the paid tolerance band the installment flips to PAID.
func (i *Installment) ApplyPayment(amount valueobject.Money) error {
	if i.Status == InstallmentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Installment is already paid")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(i.DueAmount) {
		return shared.NewDomainError("EXCEEDS_DUE", fmt.Sprintf(
			"Payment amount %s exceeds due amount %s",
			amount.Amount().StringFixed(2), i.DueAmount.StringFixed(2)))
	}

	i.PaidAmount = i.PaidAmount.Add(amount.Amount())
	i.DueAmount = i.DueAmount.Sub(amount.Amount())

	if withinPaidTolerance(i.DueAmount) {
		now := time.Now()
		i.Status = InstallmentStatusPaid
		i.PaidAt = &now
	}

	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// IsDue returns true if the installment is still due
func (i *Installment) IsDue() bool {
	return i.Status == InstallmentStatusDue
}

// IsPaid returns true if the installment is fully paid
func (i *Installment) IsPaid() bool {
	return i.Status == InstallmentStatusPaid
}

// DueOn reports whether the installment falls due on the given date (date-only compare)
func (i *Installment) DueOn(date time.Time) bool {
	y1, m1, d1 := i.DueDate.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
