package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSale(t *testing.T, total int64) *Sale {
	t.Helper()
	sale, err := NewSale(uuid.New(), "SALE-001", nil, bdt(total), time.Now())
	require.NoError(t, err)
	return sale
}

func TestNewSale(t *testing.T) {
	t.Run("creates due sale", func(t *testing.T) {
		sale := newTestSale(t, 5000)

		assert.Equal(t, DocumentStatusDue, sale.Status)
		assert.True(t, sale.DueAmount.Equal(decimal.NewFromInt(5000)))
		assert.True(t, sale.PaidAmount.IsZero())
	})

	t.Run("rejects empty number", func(t *testing.T) {
		_, err := NewSale(uuid.New(), "", nil, bdt(100), time.Now())
		assertDomainCode(t, err, "INVALID_SALE_NUMBER")
	})

	t.Run("rejects non-positive total", func(t *testing.T) {
		_, err := NewSale(uuid.New(), "SALE-001", nil, bdt(0), time.Now())
		assertDomainCode(t, err, "INVALID_AMOUNT")
	})
}

func TestSaleApplyPayment(t *testing.T) {
	t.Run("partial payment keeps sale due", func(t *testing.T) {
		sale := newTestSale(t, 5000)

		require.NoError(t, sale.ApplyPayment(bdt(2000)))

		assert.Equal(t, DocumentStatusDue, sale.Status)
		assert.True(t, sale.PaidAmount.Equal(decimal.NewFromInt(2000)))
		assert.True(t, sale.DueAmount.Equal(decimal.NewFromInt(3000)))
	})

	t.Run("paid and due always sum to the total", func(t *testing.T) {
		sale := newTestSale(t, 5000)

		require.NoError(t, sale.ApplyPayment(bdtStr(t, "1666.67")))
		require.NoError(t, sale.ApplyPayment(bdtStr(t, "1666.67")))

		assert.True(t, sale.PaidAmount.Add(sale.DueAmount).Equal(sale.TotalAmount))
	})

	t.Run("residual within tolerance marks paid", func(t *testing.T) {
		sale := newTestSale(t, 5000)

		require.NoError(t, sale.ApplyPayment(bdtStr(t, "4999.25")))

		assert.Equal(t, DocumentStatusPaid, sale.Status)
		assert.NotNil(t, sale.PaidAt)
		assert.True(t, sale.IsPaid())
	})

	t.Run("rejects payment on paid sale", func(t *testing.T) {
		sale := newTestSale(t, 100)
		require.NoError(t, sale.ApplyPayment(bdt(100)))

		err := sale.ApplyPayment(bdt(1))
		assertDomainCode(t, err, "INVALID_STATE")
	})

	t.Run("rejects overpayment", func(t *testing.T) {
		sale := newTestSale(t, 100)
		err := sale.ApplyPayment(bdt(200))
		assertDomainCode(t, err, "EXCEEDS_DUE")
	})
}
