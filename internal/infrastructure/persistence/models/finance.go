package models

import (
	"time"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for the Account aggregate root.
type AccountModel struct {
	OwnedAggregateModel
	Name    string          `gorm:"type:varchar(100);not null"`
	Balance decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *finance.Account {
	return &finance.Account{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Name:               m.Name,
		Balance:            m.Balance,
	}
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *finance.Account) {
	m.FromDomainOwnedAggregateRoot(a.OwnedAggregateRoot)
	m.Name = a.Name
	m.Balance = a.Balance
}

// AccountModelFromDomain creates a persistence model from a domain Account entity.
func AccountModelFromDomain(a *finance.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// PaymentModel is the persistence model for the Payment record.
type PaymentModel struct {
	OwnedAggregateModel
	Reference     string                      `gorm:"type:varchar(100);not null;uniqueIndex"`
	Amount        decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	PaymentDate   time.Time                   `gorm:"not null;index"`
	AccountID     uuid.UUID                   `gorm:"type:uuid;not null;index"`
	SourceType    trade.InstallmentSourceType `gorm:"type:varchar(20);not null;index"`
	SourceID      uuid.UUID                   `gorm:"type:uuid;not null;index"`
	InstallmentID uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Status        finance.PaymentStatus       `gorm:"type:varchar(20);not null;default:'COMPLETED'"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Reference:          m.Reference,
		Amount:             m.Amount,
		PaymentDate:        m.PaymentDate,
		AccountID:          m.AccountID,
		SourceType:         m.SourceType,
		SourceID:           m.SourceID,
		InstallmentID:      m.InstallmentID,
		Status:             m.Status,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *finance.Payment) {
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	m.Reference = p.Reference
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
	m.AccountID = p.AccountID
	m.SourceType = p.SourceType
	m.SourceID = p.SourceID
	m.InstallmentID = p.InstallmentID
	m.Status = p.Status
}

// PaymentModelFromDomain creates a persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
