package models

import (
	"time"

	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	OwnedAggregateModel
	// Unique per owner; the composite index lives in the SQL migrations.
	SaleNumber  string               `gorm:"type:varchar(50);not null;index"`
	CustomerID  *uuid.UUID           `gorm:"type:uuid;index"`
	TotalAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	PaidAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	DueAmount   decimal.Decimal      `gorm:"type:decimal(18,4);not null;index"`
	Status      trade.DocumentStatus `gorm:"type:varchar(20);not null;default:'DUE';index"`
	SaleDate    time.Time            `gorm:"not null;index"`
	PaidAt      *time.Time
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *trade.Sale {
	return &trade.Sale{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		SaleNumber:         m.SaleNumber,
		CustomerID:         m.CustomerID,
		TotalAmount:        m.TotalAmount,
		PaidAmount:         m.PaidAmount,
		DueAmount:          m.DueAmount,
		Status:             m.Status,
		SaleDate:           m.SaleDate,
		PaidAt:             m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.FromDomainOwnedAggregateRoot(s.OwnedAggregateRoot)
	m.SaleNumber = s.SaleNumber
	m.CustomerID = s.CustomerID
	m.TotalAmount = s.TotalAmount
	m.PaidAmount = s.PaidAmount
	m.DueAmount = s.DueAmount
	m.Status = s.Status
	m.SaleDate = s.SaleDate
	m.PaidAt = s.PaidAt
}

// SaleModelFromDomain creates a persistence model from a domain Sale entity.
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// PurchaseModel is the persistence model for the Purchase aggregate root.
type PurchaseModel struct {
	OwnedAggregateModel
	// Unique per owner; the composite index lives in the SQL migrations.
	PurchaseNumber string               `gorm:"type:varchar(50);not null;index"`
	SupplierID     *uuid.UUID           `gorm:"type:uuid;index"`
	TotalAmount    decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	PaidAmount     decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	DueAmount      decimal.Decimal      `gorm:"type:decimal(18,4);not null;index"`
	Status         trade.DocumentStatus `gorm:"type:varchar(20);not null;default:'DUE';index"`
	PurchaseDate   time.Time            `gorm:"not null;index"`
	PaidAt         *time.Time
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model to a domain Purchase entity.
func (m *PurchaseModel) ToDomain() *trade.Purchase {
	return &trade.Purchase{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		PurchaseNumber:     m.PurchaseNumber,
		SupplierID:         m.SupplierID,
		TotalAmount:        m.TotalAmount,
		PaidAmount:         m.PaidAmount,
		DueAmount:          m.DueAmount,
		Status:             m.Status,
		PurchaseDate:       m.PurchaseDate,
		PaidAt:             m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Purchase entity.
func (m *PurchaseModel) FromDomain(p *trade.Purchase) {
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	m.PurchaseNumber = p.PurchaseNumber
	m.SupplierID = p.SupplierID
	m.TotalAmount = p.TotalAmount
	m.PaidAmount = p.PaidAmount
	m.DueAmount = p.DueAmount
	m.Status = p.Status
	m.PurchaseDate = p.PurchaseDate
	m.PaidAt = p.PaidAt
}

// PurchaseModelFromDomain creates a persistence model from a domain Purchase entity.
func PurchaseModelFromDomain(p *trade.Purchase) *PurchaseModel {
	m := &PurchaseModel{}
	m.FromDomain(p)
	return m
}

// InstallmentModel is the persistence model for the Installment aggregate root.
type InstallmentModel struct {
	OwnedAggregateModel
	InstallmentNumber string                      `gorm:"type:varchar(50);not null;index"`
	SourceType        trade.InstallmentSourceType `gorm:"type:varchar(20);not null;index"`
	SourceID          uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Amount            decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	PaidAmount        decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	DueAmount         decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	DueDate           time.Time                   `gorm:"not null;index"`
	Status            trade.InstallmentStatus     `gorm:"type:varchar(20);not null;default:'DUE';index"`
	PaidAt            *time.Time
}

// TableName returns the table name for GORM
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToDomain converts the persistence model to a domain Installment entity.
func (m *InstallmentModel) ToDomain() *trade.Installment {
	return &trade.Installment{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		InstallmentNumber:  m.InstallmentNumber,
		SourceType:         m.SourceType,
		SourceID:           m.SourceID,
		Amount:             m.Amount,
		PaidAmount:         m.PaidAmount,
		DueAmount:          m.DueAmount,
		DueDate:            m.DueDate,
		Status:             m.Status,
		PaidAt:             m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Installment entity.
func (m *InstallmentModel) FromDomain(i *trade.Installment) {
	m.FromDomainOwnedAggregateRoot(i.OwnedAggregateRoot)
	m.InstallmentNumber = i.InstallmentNumber
	m.SourceType = i.SourceType
	m.SourceID = i.SourceID
	m.Amount = i.Amount
	m.PaidAmount = i.PaidAmount
	m.DueAmount = i.DueAmount
	m.DueDate = i.DueDate
	m.Status = i.Status
	m.PaidAt = i.PaidAt
}

// InstallmentModelFromDomain creates a persistence model from a domain Installment entity.
func InstallmentModelFromDomain(i *trade.Installment) *InstallmentModel {
	m := &InstallmentModel{}
	m.FromDomain(i)
	return m
}
