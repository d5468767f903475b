package models

import (
	"time"

	"github.com/retailpos/backend/internal/domain/investment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentModel is the persistence model for the Investment aggregate root.
type InvestmentModel struct {
	OwnedAggregateModel
	InvestorName     string                      `gorm:"type:varchar(200);not null"`
	CurrentPrincipal decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	ProfitRate       decimal.Decimal             `gorm:"type:decimal(8,4);not null"`
	Status           investment.InvestmentStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	StartDate        time.Time                   `gorm:"not null"`
	EndDate          *time.Time
	LastProfitDate   *time.Time
	ClosedAt         *time.Time
	CompletedAt      *time.Time
}

// TableName returns the table name for GORM
func (InvestmentModel) TableName() string {
	return "investments"
}

// ToDomain converts the persistence model to a domain Investment entity.
func (m *InvestmentModel) ToDomain() *investment.Investment {
	return &investment.Investment{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		InvestorName:       m.InvestorName,
		CurrentPrincipal:   m.CurrentPrincipal,
		ProfitRate:         m.ProfitRate,
		Status:             m.Status,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		LastProfitDate:     m.LastProfitDate,
		ClosedAt:           m.ClosedAt,
		CompletedAt:        m.CompletedAt,
	}
}

// FromDomain populates the persistence model from a domain Investment entity.
func (m *InvestmentModel) FromDomain(inv *investment.Investment) {
	m.FromDomainOwnedAggregateRoot(inv.OwnedAggregateRoot)
	m.InvestorName = inv.InvestorName
	m.CurrentPrincipal = inv.CurrentPrincipal
	m.ProfitRate = inv.ProfitRate
	m.Status = inv.Status
	m.StartDate = inv.StartDate
	m.EndDate = inv.EndDate
	m.LastProfitDate = inv.LastProfitDate
	m.ClosedAt = inv.ClosedAt
	m.CompletedAt = inv.CompletedAt
}

// InvestmentModelFromDomain creates a persistence model from a domain Investment entity.
func InvestmentModelFromDomain(inv *investment.Investment) *InvestmentModel {
	m := &InvestmentModel{}
	m.FromDomain(inv)
	return m
}

// InvestmentReturnModel is the persistence model for the InvestmentReturn
// entity. The unique (investment_id, period_end) index is what makes the
// accrual job idempotent at the storage level.
type InvestmentReturnModel struct {
	OwnedAggregateModel
	InvestmentID      uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_return_investment_period,priority:1"`
	PeriodEnd         time.Time               `gorm:"type:date;not null;uniqueIndex:idx_return_investment_period,priority:2"`
	PrincipalSnapshot decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	ProfitRate        decimal.Decimal         `gorm:"type:decimal(8,4);not null"`
	ProfitAmount      decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Status            investment.ReturnStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaidAt            *time.Time
}

// TableName returns the table name for GORM
func (InvestmentReturnModel) TableName() string {
	return "investment_returns"
}

// ToDomain converts the persistence model to a domain InvestmentReturn entity.
func (m *InvestmentReturnModel) ToDomain() *investment.InvestmentReturn {
	return &investment.InvestmentReturn{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		InvestmentID:       m.InvestmentID,
		PeriodEnd:          m.PeriodEnd,
		PrincipalSnapshot:  m.PrincipalSnapshot,
		ProfitRate:         m.ProfitRate,
		ProfitAmount:       m.ProfitAmount,
		Status:             m.Status,
		PaidAt:             m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain InvestmentReturn entity.
func (m *InvestmentReturnModel) FromDomain(r *investment.InvestmentReturn) {
	m.FromDomainOwnedAggregateRoot(r.OwnedAggregateRoot)
	m.InvestmentID = r.InvestmentID
	m.PeriodEnd = r.PeriodEnd
	m.PrincipalSnapshot = r.PrincipalSnapshot
	m.ProfitRate = r.ProfitRate
	m.ProfitAmount = r.ProfitAmount
	m.Status = r.Status
	m.PaidAt = r.PaidAt
}

// InvestmentReturnModelFromDomain creates a persistence model from a domain InvestmentReturn entity.
func InvestmentReturnModelFromDomain(r *investment.InvestmentReturn) *InvestmentReturnModel {
	m := &InvestmentReturnModel{}
	m.FromDomain(r)
	return m
}
