package docnum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	date := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

	assert.Equal(t, "PO-20260830-0007", Format(KindPurchaseOrder, date, 7))
	assert.Equal(t, "GRN-20260830-0001", Format(KindGRN, date, 1))
	assert.Equal(t, "EPAY-20260830-1234", Format(KindExpensePayment, date, 1234))
	// Values past four digits widen rather than truncate
	assert.Equal(t, "SALE-20260830-10001", Format(KindSale, date, 10001))
}

func TestDateKey(t *testing.T) {
	d1 := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	d2 := time.Date(2026, 8, 31, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, "PAY-20260830", DateKey(KindPayment, d1))
	// Each day gets its own counter scope
	assert.NotEqual(t, DateKey(KindPayment, d1), DateKey(KindPayment, d2))
	// Kinds never share a scope
	assert.NotEqual(t, DateKey(KindIntend, d1), DateKey(KindPurchaseOrder, d1))
}
