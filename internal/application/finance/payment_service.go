package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentApplicationService applies installment payments to their parent
// documents and posts the resulting money movement to an account. Each apply
// call runs inside a single transaction so the installment, the parent
// document, the payment record and the account balance move together or not
// at all.
type PaymentApplicationService struct {
	installmentRepo trade.InstallmentRepository
	saleRepo        trade.SaleRepository
	purchaseRepo    trade.PurchaseRepository
	accountRepo     finance.AccountRepository
	paymentRepo     finance.PaymentRepository
	txManager       shared.TxManager
}

// NewPaymentApplicationService creates a new PaymentApplicationService
func NewPaymentApplicationService(
	installmentRepo trade.InstallmentRepository,
	saleRepo trade.SaleRepository,
	purchaseRepo trade.PurchaseRepository,
	accountRepo finance.AccountRepository,
	paymentRepo finance.PaymentRepository,
	txManager shared.TxManager,
) *PaymentApplicationService {
	return &PaymentApplicationService{
		installmentRepo: installmentRepo,
		saleRepo:        saleRepo,
		purchaseRepo:    purchaseRepo,
		accountRepo:     accountRepo,
		paymentRepo:     paymentRepo,
		txManager:       txManager,
	}
}

// ApplyInstallmentRequest represents a request to pay against an installment
type ApplyInstallmentRequest struct {
	InstallmentID uuid.UUID
	Amount        decimal.Decimal
	AccountID     uuid.UUID
	PaymentDate   time.Time
}

// ApplyInstallmentResult represents the outcome of an installment payment
type ApplyInstallmentResult struct {
	PaymentID         uuid.UUID               `json:"payment_id"`
	Reference         string                  `json:"reference"`
	InstallmentStatus trade.InstallmentStatus `json:"installment_status"`
	DocumentStatus    trade.DocumentStatus    `json:"document_status"`
	AccountBalance    decimal.Decimal         `json:"account_balance"`
}

// ApplySaleInstallment applies a payment to a sale installment: the
// installment and its parent sale advance by the paid amount, a positive
// payment record is created, and the account is credited.
func (s *PaymentApplicationService) ApplySaleInstallment(
	ctx context.Context,
	req ApplyInstallmentRequest,
) (*ApplyInstallmentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "apply_sale_installment")
	defer span.End()

	telemetry.SetAttributes(span,
		"installment_id", req.InstallmentID.String(),
		"account_id", req.AccountID.String(),
		"amount", req.Amount.String(),
	)

	var result *ApplyInstallmentResult
	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		installment, sale, account, err := s.loadSaleInstallment(txCtx, req)
		if err != nil {
			return err
		}

		amount := valueobject.NewMoneyBDT(req.Amount)

		if err := installment.ApplyPayment(amount); err != nil {
			return err
		}
		if err := sale.ApplyPayment(amount); err != nil {
			return err
		}

		payment, err := finance.NewInstallmentPayment(
			installment.GetOwnerID(), installment, amount, req.PaymentDate, account.ID)
		if err != nil {
			return err
		}

		if err := account.Credit(amount); err != nil {
			return err
		}

		if err := s.installmentRepo.SaveWithLock(txCtx, installment); err != nil {
			return fmt.Errorf("failed to save installment: %w", err)
		}
		if err := s.saleRepo.SaveWithLock(txCtx, sale); err != nil {
			return fmt.Errorf("failed to save sale: %w", err)
		}
		if err := s.accountRepo.SaveWithLock(txCtx, account); err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}
		if err := s.paymentRepo.Create(txCtx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		result = &ApplyInstallmentResult{
			PaymentID:         payment.ID,
			Reference:         payment.Reference,
			InstallmentStatus: installment.Status,
			DocumentStatus:    sale.Status,
			AccountBalance:    account.Balance,
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return result, nil
}

// ApplyPurchaseInstallment applies a payment to a purchase installment: the
// installment and its parent purchase advance by the paid amount, a negative
// payment record is created, and the account is debited.
func (s *PaymentApplicationService) ApplyPurchaseInstallment(
	ctx context.Context,
	req ApplyInstallmentRequest,
) (*ApplyInstallmentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "apply_purchase_installment")
	defer span.End()

	telemetry.SetAttributes(span,
		"installment_id", req.InstallmentID.String(),
		"account_id", req.AccountID.String(),
		"amount", req.Amount.String(),
	)

	var result *ApplyInstallmentResult
	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		installment, purchase, account, err := s.loadPurchaseInstallment(txCtx, req)
		if err != nil {
			return err
		}

		amount := valueobject.NewMoneyBDT(req.Amount)

		if err := installment.ApplyPayment(amount); err != nil {
			return err
		}
		if err := purchase.ApplyPayment(amount); err != nil {
			return err
		}

		payment, err := finance.NewInstallmentPayment(
			installment.GetOwnerID(), installment, amount, req.PaymentDate, account.ID)
		if err != nil {
			return err
		}

		if err := account.Withdraw(amount); err != nil {
			return err
		}

		if err := s.installmentRepo.SaveWithLock(txCtx, installment); err != nil {
			return fmt.Errorf("failed to save installment: %w", err)
		}
		if err := s.purchaseRepo.SaveWithLock(txCtx, purchase); err != nil {
			return fmt.Errorf("failed to save purchase: %w", err)
		}
		if err := s.accountRepo.SaveWithLock(txCtx, account); err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}
		if err := s.paymentRepo.Create(txCtx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		result = &ApplyInstallmentResult{
			PaymentID:         payment.ID,
			Reference:         payment.Reference,
			InstallmentStatus: installment.Status,
			DocumentStatus:    purchase.Status,
			AccountBalance:    account.Balance,
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return result, nil
}

// loadSaleInstallment resolves the installment, its parent sale and the
// target account, failing with NOT_FOUND errors before anything is mutated.
func (s *PaymentApplicationService) loadSaleInstallment(
	ctx context.Context,
	req ApplyInstallmentRequest,
) (*trade.Installment, *trade.Sale, *finance.Account, error) {
	installment, err := s.installmentRepo.FindByID(ctx, req.InstallmentID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get installment: %w", err)
	}
	if installment == nil {
		return nil, nil, nil, shared.NewDomainError("INSTALLMENT_NOT_FOUND", "Installment not found")
	}
	if installment.SourceType != trade.InstallmentSourceSale {
		return nil, nil, nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Installment does not belong to a sale")
	}

	sale, err := s.saleRepo.FindByID(ctx, installment.SourceID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get sale: %w", err)
	}
	if sale == nil {
		return nil, nil, nil, shared.NewDomainError("SALE_NOT_FOUND", "Parent sale not found")
	}

	account, err := s.accountRepo.FindByID(ctx, req.AccountID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, nil, nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
	}

	return installment, sale, account, nil
}

func (s *PaymentApplicationService) loadPurchaseInstallment(
	ctx context.Context,
	req ApplyInstallmentRequest,
) (*trade.Installment, *trade.Purchase, *finance.Account, error) {
	installment, err := s.installmentRepo.FindByID(ctx, req.InstallmentID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get installment: %w", err)
	}
	if installment == nil {
		return nil, nil, nil, shared.NewDomainError("INSTALLMENT_NOT_FOUND", "Installment not found")
	}
	if installment.SourceType != trade.InstallmentSourcePurchase {
		return nil, nil, nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Installment does not belong to a purchase")
	}

	purchase, err := s.purchaseRepo.FindByID(ctx, installment.SourceID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	if purchase == nil {
		return nil, nil, nil, shared.NewDomainError("PURCHASE_NOT_FOUND", "Parent purchase not found")
	}

	account, err := s.accountRepo.FindByID(ctx, req.AccountID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, nil, nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
	}

	return installment, purchase, account, nil
}
