package investment

import (
	"context"
	"fmt"

	"github.com/retailpos/backend/internal/domain/investment"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// InvestmentService serves reads over investments and their accrued returns.
type InvestmentService struct {
	investmentRepo investment.InvestmentRepository
	returnRepo     investment.InvestmentReturnRepository
}

// NewInvestmentService creates a new InvestmentService
func NewInvestmentService(
	investmentRepo investment.InvestmentRepository,
	returnRepo investment.InvestmentReturnRepository,
) *InvestmentService {
	return &InvestmentService{
		investmentRepo: investmentRepo,
		returnRepo:     returnRepo,
	}
}

// ListInvestments lists investments visible to the actor
func (s *InvestmentService) ListInvestments(ctx context.Context, filter investment.InvestmentFilter) ([]investment.Investment, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "investment", "list_investments")
	defer span.End()

	investments, err := s.investmentRepo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to list investments: %w", err)
	}
	total, err := s.investmentRepo.Count(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to count investments: %w", err)
	}
	return investments, total, nil
}

// GetInvestment fetches one investment by ID
func (s *InvestmentService) GetInvestment(ctx context.Context, id uuid.UUID) (*investment.Investment, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "investment", "get_investment")
	defer span.End()

	inv, err := s.investmentRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}
	if inv == nil {
		return nil, shared.NewDomainError("INVESTMENT_NOT_FOUND", "Investment not found")
	}
	return inv, nil
}

// ListReturns lists the returns accrued for one investment. The investment is
// loaded first so the owner scope applies before the return rows are read.
func (s *InvestmentService) ListReturns(ctx context.Context, investmentID uuid.UUID) ([]investment.InvestmentReturn, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "investment", "list_returns")
	defer span.End()

	inv, err := s.GetInvestment(ctx, investmentID)
	if err != nil {
		return nil, err
	}

	returns, err := s.returnRepo.FindByInvestment(ctx, inv.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list returns: %w", err)
	}
	return returns, nil
}
