package finance

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bdt(amount int64) valueobject.Money {
	return valueobject.NewMoneyBDT(decimal.NewFromInt(amount))
}

func newTestInstallment(t *testing.T, sourceType trade.InstallmentSourceType) *trade.Installment {
	t.Helper()
	inst, err := trade.NewInstallment(
		uuid.New(), "INST-001", sourceType, uuid.New(), bdt(1000), time.Now().AddDate(0, 1, 0),
	)
	require.NoError(t, err)
	return inst
}

func TestNewInstallmentPayment(t *testing.T) {
	accountID := uuid.New()
	paymentDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	t.Run("sale installment stores positive amount", func(t *testing.T) {
		inst := newTestInstallment(t, trade.InstallmentSourceSale)

		payment, err := NewInstallmentPayment(uuid.New(), inst, bdt(400), paymentDate, accountID)
		require.NoError(t, err)

		assert.True(t, payment.Amount.Equal(decimal.NewFromInt(400)))
		assert.True(t, payment.IsIncoming())
		assert.Equal(t, inst.ID, payment.InstallmentID)
		assert.Equal(t, inst.SourceID, payment.SourceID)
		assert.Equal(t, trade.InstallmentSourceSale, payment.SourceType)
		assert.Equal(t, PaymentStatusCompleted, payment.Status)
	})

	t.Run("purchase installment stores negated amount", func(t *testing.T) {
		inst := newTestInstallment(t, trade.InstallmentSourcePurchase)

		payment, err := NewInstallmentPayment(uuid.New(), inst, bdt(400), paymentDate, accountID)
		require.NoError(t, err)

		assert.True(t, payment.Amount.Equal(decimal.NewFromInt(-400)))
		assert.False(t, payment.IsIncoming())
	})

	t.Run("reference carries the installment id", func(t *testing.T) {
		inst := newTestInstallment(t, trade.InstallmentSourceSale)

		payment, err := NewInstallmentPayment(uuid.New(), inst, bdt(400), paymentDate, accountID)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(payment.Reference, fmt.Sprintf("PI-%s-", inst.ID)))
	})

	t.Run("references are unique per payment", func(t *testing.T) {
		inst := newTestInstallment(t, trade.InstallmentSourceSale)

		first, err := NewInstallmentPayment(uuid.New(), inst, bdt(100), paymentDate, accountID)
		require.NoError(t, err)
		second, err := NewInstallmentPayment(uuid.New(), inst, bdt(100), paymentDate, accountID)
		require.NoError(t, err)

		assert.NotEqual(t, first.Reference, second.Reference)
	})

	t.Run("rejects nil installment", func(t *testing.T) {
		_, err := NewInstallmentPayment(uuid.New(), nil, bdt(100), paymentDate, accountID)
		assertDomainCode(t, err, "INVALID_INSTALLMENT")
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		inst := newTestInstallment(t, trade.InstallmentSourceSale)
		_, err := NewInstallmentPayment(uuid.New(), inst, bdt(0), paymentDate, accountID)
		assertDomainCode(t, err, "INVALID_AMOUNT")
	})

	t.Run("rejects empty account", func(t *testing.T) {
		inst := newTestInstallment(t, trade.InstallmentSourceSale)
		_, err := NewInstallmentPayment(uuid.New(), inst, bdt(100), paymentDate, uuid.Nil)
		assertDomainCode(t, err, "INVALID_ACCOUNT")
	})
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}
