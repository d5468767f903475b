package notification

import (
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

func newDueInstallment(t *testing.T, sourceType trade.InstallmentSourceType) *trade.Installment {
	t.Helper()
	inst, err := trade.NewInstallment(
		uuid.New(),
		"INST-001",
		sourceType,
		uuid.New(),
		valueobject.NewMoneyBDT(decimal.RequireFromString("1500.50")),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return inst
}

func TestNewInstallmentDueNotification(t *testing.T) {
	t.Run("builds pending reminder keyed on the due date", func(t *testing.T) {
		inst := newDueInstallment(t, trade.InstallmentSourceSale)

		n, err := NewInstallmentDueNotification(inst)
		require.NoError(t, err)

		assert.Equal(t, NotificationTypeInstallmentDue, n.Type)
		assert.Equal(t, inst.ID, n.InstallmentID)
		assert.Equal(t, inst.GetOwnerID(), n.OwnerID)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), n.NotifyDate)
		assert.Equal(t, NotificationStatusPending, n.Status)
		assert.Nil(t, n.SentAt)
	})

	t.Run("truncates the due date to midnight", func(t *testing.T) {
		inst := newDueInstallment(t, trade.InstallmentSourceSale)
		inst.DueDate = time.Date(2026, 9, 1, 14, 30, 12, 0, time.UTC)

		n, err := NewInstallmentDueNotification(inst)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), n.NotifyDate)
	})

	t.Run("rejects nil installment", func(t *testing.T) {
		_, err := NewInstallmentDueNotification(nil)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INSTALLMENT", domainErr.Code)
	})
}

func TestFormatDueMessage(t *testing.T) {
	t.Run("sale installment", func(t *testing.T) {
		inst := newDueInstallment(t, trade.InstallmentSourceSale)

		msg := FormatDueMessage(inst)

		assert.Contains(t, msg, "1500.50")
		assert.Contains(t, msg, "sale")
		assert.Contains(t, msg, inst.SourceID.String())
		assert.Contains(t, msg, "2026-09-01")
	})

	t.Run("purchase installment", func(t *testing.T) {
		inst := newDueInstallment(t, trade.InstallmentSourcePurchase)

		msg := FormatDueMessage(inst)

		assert.Contains(t, msg, "purchase")
	})
}

func TestNotificationDeliveryTransitions(t *testing.T) {
	inst := newDueInstallment(t, trade.InstallmentSourceSale)
	n, err := NewInstallmentDueNotification(inst)
	require.NoError(t, err)

	t.Run("mark sent", func(t *testing.T) {
		before := n.Version
		n.MarkSent()
		assert.Equal(t, NotificationStatusSent, n.Status)
		assert.NotNil(t, n.SentAt)
		assert.Equal(t, before+1, n.Version)
	})

	t.Run("mark failed", func(t *testing.T) {
		n.MarkFailed()
		assert.Equal(t, NotificationStatusFailed, n.Status)
	})
}
