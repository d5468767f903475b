package finance

import (
	"context"
	"fmt"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService serves reads over accounts and the payment ledger.
type AccountService struct {
	accountRepo finance.AccountRepository
	paymentRepo finance.PaymentRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accountRepo finance.AccountRepository,
	paymentRepo finance.PaymentRepository,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
	}
}

// ListAccounts lists accounts visible to the actor
func (s *AccountService) ListAccounts(ctx context.Context, filter shared.Filter) ([]finance.Account, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "list_accounts")
	defer span.End()

	accounts, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetAccount fetches one account by ID
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*finance.Account, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "get_account")
	defer span.End()

	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
	}
	return account, nil
}

// AccountBalanceResult carries an account balance next to its ledger replay.
// When Consistent is false the stored balance has drifted from the payment
// history and needs investigation.
type AccountBalanceResult struct {
	AccountID  uuid.UUID       `json:"account_id"`
	Balance    decimal.Decimal `json:"balance"`
	LedgerSum  decimal.Decimal `json:"ledger_sum"`
	Consistent bool            `json:"consistent"`
}

// GetAccountBalance fetches an account balance and verifies it against the
// sum of payments posted to the account.
func (s *AccountService) GetAccountBalance(ctx context.Context, id uuid.UUID) (*AccountBalanceResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "get_account_balance")
	defer span.End()

	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	ledgerSum, err := s.paymentRepo.SumByAccount(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum account ledger: %w", err)
	}

	return &AccountBalanceResult{
		AccountID:  account.ID,
		Balance:    account.Balance,
		LedgerSum:  ledgerSum,
		Consistent: account.Balance.Equal(ledgerSum),
	}, nil
}

// ListPayments lists payments visible to the actor
func (s *AccountService) ListPayments(ctx context.Context, filter finance.PaymentFilter) ([]finance.Payment, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "list_payments")
	defer span.End()

	payments, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	total, err := s.paymentRepo.Count(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return payments, total, nil
}

// GetPayment fetches one payment by ID
func (s *AccountService) GetPayment(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "get_payment")
	defer span.End()

	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if payment == nil {
		return nil, shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found")
	}
	return payment, nil
}
