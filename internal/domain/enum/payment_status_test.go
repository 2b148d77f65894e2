package enum

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name       string
		totalPaid  int64
		receivable int64
		want       PaymentStatus
	}{
		{"nothing paid", 0, 1000, PaymentStatusUnpaid},
		{"partially paid", 400, 1000, PaymentStatusPartial},
		{"exactly paid", 1000, 1000, PaymentStatusPaid},
		{"zero receivable nothing paid", 0, 0, PaymentStatusUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DerivePaymentStatus(decimal.NewFromInt(tt.totalPaid), decimal.NewFromInt(tt.receivable))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaymentMethodIsValid(t *testing.T) {
	assert.True(t, PaymentMethodCash.IsValid())
	assert.True(t, PaymentMethodUPI.IsValid())
	assert.False(t, PaymentMethod("bitcoin").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}
