package investment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/investment"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AccrualService runs the monthly profit accrual over all active investments.
// Each investment is processed in its own transaction so one failure never
// rolls back or blocks the others, and the run as a whole can be repeated:
// the unique (investment, period end) constraint on returns plus the
// LastProfitDate guard make a rerun a no-op for already-processed rows.
type AccrualService struct {
	investmentRepo investment.InvestmentRepository
	returnRepo     investment.InvestmentReturnRepository
	txManager      shared.TxManager
}

// NewAccrualService creates a new AccrualService
func NewAccrualService(
	investmentRepo investment.InvestmentRepository,
	returnRepo investment.InvestmentReturnRepository,
	txManager shared.TxManager,
) *AccrualService {
	return &AccrualService{
		investmentRepo: investmentRepo,
		returnRepo:     returnRepo,
		txManager:      txManager,
	}
}

// AccrualRunResult summarizes one accrual run
type AccrualRunResult struct {
	PeriodEnd time.Time `json:"period_end"`
	Total     int       `json:"total"`
	Accrued   int       `json:"accrued"`
	Closed    int       `json:"closed"`
	Completed int       `json:"completed"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
}

// ProcessMonthlyReturns accrues profit for every active investment for the
// period ending at periodEnd (normally the last day of the current month).
func (s *AccrualService) ProcessMonthlyReturns(ctx context.Context, periodEnd time.Time) (*AccrualRunResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "investment", "process_monthly_returns")
	defer span.End()
	telemetry.SetAttribute(span, "period_end", periodEnd.Format("2006-01-02"))

	log := logger.L(ctx)

	investments, err := s.investmentRepo.SystemFindActive(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list active investments: %w", err)
	}

	result := &AccrualRunResult{PeriodEnd: periodEnd, Total: len(investments)}
	for i := range investments {
		inv := &investments[i]
		action, err := s.processOne(ctx, inv, periodEnd)
		if err != nil {
			result.Failed++
			log.Error("investment accrual failed",
				zap.String("investment_id", inv.ID.String()),
				zap.Error(err),
			)
			continue
		}

		switch action {
		case investment.AccrualAccrue:
			result.Accrued++
		case investment.AccrualClose:
			result.Closed++
		case investment.AccrualComplete:
			result.Completed++
		default:
			result.Skipped++
		}
	}

	log.Info("monthly accrual run finished",
		zap.String("period_end", periodEnd.Format("2006-01-02")),
		zap.Int("total", result.Total),
		zap.Int("accrued", result.Accrued),
		zap.Int("closed", result.Closed),
		zap.Int("completed", result.Completed),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

// processOne handles a single investment inside its own transaction
func (s *AccrualService) processOne(
	ctx context.Context,
	inv *investment.Investment,
	periodEnd time.Time,
) (investment.AccrualAction, error) {
	action := investment.DecideAccrual(inv, periodEnd)

	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		switch action {
		case investment.AccrualClose:
			inv.Close()
			return s.investmentRepo.SaveWithLock(txCtx, inv)

		case investment.AccrualComplete:
			inv.Complete()
			return s.investmentRepo.SaveWithLock(txCtx, inv)

		case investment.AccrualAccrue:
			// A return row may already exist if an earlier run crashed after
			// creating it but before advancing LastProfitDate. Recover by
			// advancing the date without accruing again.
			existing, err := s.returnRepo.FindByPeriod(txCtx, inv.ID, periodEnd)
			if err != nil {
				return fmt.Errorf("failed to check existing return: %w", err)
			}
			if existing == nil {
				ret, err := investment.NewInvestmentReturn(inv, periodEnd)
				if err != nil {
					return err
				}
				if err := s.returnRepo.Create(txCtx, ret); err != nil {
					if !errors.Is(err, shared.ErrAlreadyExists) {
						return fmt.Errorf("failed to create return: %w", err)
					}
				}
			}

			inv.AdvanceProfitDate(periodEnd)
			return s.investmentRepo.SaveWithLock(txCtx, inv)

		default:
			return nil
		}
	})
	if err != nil {
		return action, err
	}
	return action, nil
}
