package investment

import (
	"testing"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActiveInvestment(t *testing.T, principal, rate string) *Investment {
	t.Helper()
	inv, err := NewInvestment(
		uuid.New(),
		"Rahim Uddin",
		decimal.RequireFromString(principal),
		decimal.RequireFromString(rate),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		nil,
	)
	require.NoError(t, err)
	return inv
}

func TestNewInvestment(t *testing.T) {
	t.Run("creates active investment", func(t *testing.T) {
		inv := newActiveInvestment(t, "100000", "2.5")

		assert.Equal(t, InvestmentStatusActive, inv.Status)
		assert.Nil(t, inv.LastProfitDate)
	})

	t.Run("rejects empty investor name", func(t *testing.T) {
		_, err := NewInvestment(uuid.New(), "", decimal.NewFromInt(1000), decimal.NewFromInt(2), time.Now(), nil)
		assertDomainCode(t, err, "INVALID_INVESTOR")
	})

	t.Run("rejects non-positive principal", func(t *testing.T) {
		_, err := NewInvestment(uuid.New(), "Rahim", decimal.Zero, decimal.NewFromInt(2), time.Now(), nil)
		assertDomainCode(t, err, "INVALID_PRINCIPAL")
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := NewInvestment(uuid.New(), "Rahim", decimal.NewFromInt(1000), decimal.NewFromInt(-1), time.Now(), nil)
		assertDomainCode(t, err, "INVALID_RATE")
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, -1, 0)
		_, err := NewInvestment(uuid.New(), "Rahim", decimal.NewFromInt(1000), decimal.NewFromInt(2), start, &end)
		assertDomainCode(t, err, "INVALID_END_DATE")
	})
}

func TestComputeProfit(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		expected  string
	}{
		{"whole numbers", "100000", "2.5", "2500"},
		{"rounds to two places", "33333", "1.75", "583.33"},
		{"rounds half up", "10010", "2.5", "250.25"},
		{"zero rate", "100000", "0", "0"},
		{"small principal", "100", "1.333", "1.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Investment{
				CurrentPrincipal: decimal.RequireFromString(tt.principal),
				ProfitRate:       decimal.RequireFromString(tt.rate),
			}
			assert.True(t, inv.ComputeProfit().Equal(decimal.RequireFromString(tt.expected)),
				"got %s", inv.ComputeProfit())
		})
	}
}

func TestDecideAccrual(t *testing.T) {
	periodEnd := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	t.Run("accrues active investment", func(t *testing.T) {
		inv := newActiveInvestment(t, "100000", "2.5")
		assert.Equal(t, AccrualAccrue, DecideAccrual(inv, periodEnd))
	})

	t.Run("skips non-active investment", func(t *testing.T) {
		inv := newActiveInvestment(t, "100000", "2.5")
		inv.Close()
		assert.Equal(t, AccrualSkip, DecideAccrual(inv, periodEnd))
	})

	t.Run("closes drained principal", func(t *testing.T) {
		inv := newActiveInvestment(t, "100000", "2.5")
		inv.CurrentPrincipal = decimal.Zero
		assert.Equal(t, AccrualClose, DecideAccrual(inv, periodEnd))
	})

	t.Run("skips investment starting after the period", func(t *testing.T) {
		inv := newActiveInvestment(t, "100000", "2.5")
		inv.StartDate = periodEnd.AddDate(0, 0, 1)
		assert.Equal(t, AccrualSkip, DecideAccrual(inv, periodEnd))
	})

	t.Run("accrues investment starting on the period end", func(t *testing.T) {
		inv := newActiveInvestment(t, "100000", "2.5")
		inv.StartDate = periodEnd
		assert.Equal(t, AccrualAccrue, DecideAccrual(inv, periodEnd))
	})

	t.Run("completes investment past its end date", func(t *testing.T) {
		inv := newActiveInvestment(t, "100000", "2.5")
		end := periodEnd.AddDate(0, 0, -5)
		inv.EndDate = &end
		assert.Equal(t, AccrualComplete, DecideAccrual(inv, periodEnd))
	})

	t.Run("skips already-processed period", func(t *testing.T) {
		inv := newActiveInvestment(t, "100000", "2.5")
		inv.AdvanceProfitDate(periodEnd)
		assert.Equal(t, AccrualSkip, DecideAccrual(inv, periodEnd))
	})

	t.Run("accrues the next period after processing", func(t *testing.T) {
		inv := newActiveInvestment(t, "100000", "2.5")
		inv.AdvanceProfitDate(time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, AccrualAccrue, DecideAccrual(inv, periodEnd))
	})
}

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2028, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC), time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LastDayOfMonth(tt.in))
	}
}

func TestNewInvestmentReturn(t *testing.T) {
	periodEnd := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	t.Run("snapshots principal and rate", func(t *testing.T) {
		inv := newActiveInvestment(t, "100000", "2.5")

		ret, err := NewInvestmentReturn(inv, periodEnd)
		require.NoError(t, err)

		assert.Equal(t, inv.ID, ret.InvestmentID)
		assert.Equal(t, inv.GetOwnerID(), ret.OwnerID)
		assert.True(t, ret.PrincipalSnapshot.Equal(inv.CurrentPrincipal))
		assert.True(t, ret.ProfitAmount.Equal(decimal.RequireFromString("2500")))
		assert.Equal(t, ReturnStatusPending, ret.Status)
	})

	t.Run("rejects nil investment", func(t *testing.T) {
		_, err := NewInvestmentReturn(nil, periodEnd)
		assertDomainCode(t, err, "INVALID_INVESTMENT")
	})
}

func TestInvestmentReturnMarkPaid(t *testing.T) {
	inv := newActiveInvestment(t, "100000", "2.5")
	ret, err := NewInvestmentReturn(inv, time.Now())
	require.NoError(t, err)

	require.NoError(t, ret.MarkPaid())
	assert.Equal(t, ReturnStatusPaid, ret.Status)
	assert.NotNil(t, ret.PaidAt)

	err = ret.MarkPaid()
	assertDomainCode(t, err, "ALREADY_PAID")
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}
