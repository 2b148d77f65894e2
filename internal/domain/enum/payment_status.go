package enum

import "github.com/shopspring/decimal"

// PaymentStatus represents how much of a receivable has been paid
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// IsValid reports whether s is a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// DerivePaymentStatus computes the payment status from cumulative paid
// amount vs the receivable amount. Receivable <= 0 with nothing paid is
// reported as unpaid rather than paid.
func DerivePaymentStatus(totalPaid, receivable decimal.Decimal) PaymentStatus {
	if totalPaid.LessThanOrEqual(decimal.Zero) {
		return PaymentStatusUnpaid
	}
	if totalPaid.GreaterThanOrEqual(receivable) {
		return PaymentStatusPaid
	}
	return PaymentStatusPartial
}

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodCard         PaymentMethod = "card"
)

// IsValid reports whether m is a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodUPI,
		PaymentMethodCheque, PaymentMethodCard:
		return true
	}
	return false
}
