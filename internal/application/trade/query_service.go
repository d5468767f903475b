package trade

import (
	"context"
	"fmt"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// QueryService serves reads over sales, purchases and installments. All
// queries run under the actor's owner scope; results never cross owners.
type QueryService struct {
	saleRepo        trade.SaleRepository
	purchaseRepo    trade.PurchaseRepository
	installmentRepo trade.InstallmentRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(
	saleRepo trade.SaleRepository,
	purchaseRepo trade.PurchaseRepository,
	installmentRepo trade.InstallmentRepository,
) *QueryService {
	return &QueryService{
		saleRepo:        saleRepo,
		purchaseRepo:    purchaseRepo,
		installmentRepo: installmentRepo,
	}
}

// ListSales lists sales visible to the actor
func (s *QueryService) ListSales(ctx context.Context, filter shared.Filter) ([]trade.Sale, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trade", "list_sales")
	defer span.End()

	sales, err := s.saleRepo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to list sales: %w", err)
	}
	total, err := s.saleRepo.Count(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return sales, total, nil
}

// GetSale fetches one sale by ID
func (s *QueryService) GetSale(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trade", "get_sale")
	defer span.End()

	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	if sale == nil {
		return nil, shared.NewDomainError("SALE_NOT_FOUND", "Sale not found")
	}
	return sale, nil
}

// ListPurchases lists purchases visible to the actor
func (s *QueryService) ListPurchases(ctx context.Context, filter shared.Filter) ([]trade.Purchase, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trade", "list_purchases")
	defer span.End()

	purchases, err := s.purchaseRepo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to list purchases: %w", err)
	}
	total, err := s.purchaseRepo.Count(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}
	return purchases, total, nil
}

// GetPurchase fetches one purchase by ID
func (s *QueryService) GetPurchase(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trade", "get_purchase")
	defer span.End()

	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	if purchase == nil {
		return nil, shared.NewDomainError("PURCHASE_NOT_FOUND", "Purchase not found")
	}
	return purchase, nil
}

// ListInstallments lists installments visible to the actor
func (s *QueryService) ListInstallments(ctx context.Context, filter trade.InstallmentFilter) ([]trade.Installment, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trade", "list_installments")
	defer span.End()

	installments, err := s.installmentRepo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to list installments: %w", err)
	}
	total, err := s.installmentRepo.Count(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to count installments: %w", err)
	}
	return installments, total, nil
}

// GetInstallment fetches one installment by ID
func (s *QueryService) GetInstallment(ctx context.Context, id uuid.UUID) (*trade.Installment, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trade", "get_installment")
	defer span.End()

	installment, err := s.installmentRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to get installment: %w", err)
	}
	if installment == nil {
		return nil, shared.NewDomainError("INSTALLMENT_NOT_FOUND", "Installment not found")
	}
	return installment, nil
}
