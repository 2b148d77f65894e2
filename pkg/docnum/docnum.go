// Package docnum formats human-readable document numbers.
//
// Every transactional document gets a date-prefixed sequential code such as
// PO-20260830-0007. The sequence value itself is allocated by the sequence
// repository; this package only owns the kinds and the formatting.
package docnum

import (
	"fmt"
	"time"
)

// Kind identifies a document number series
type Kind string

const (
	KindIntend         Kind = "INT"
	KindPurchaseOrder  Kind = "PO"
	KindGRN            Kind = "GRN"
	KindPayment        Kind = "PAY"
	KindExpensePayment Kind = "EPAY"
	KindSale           Kind = "SALE"
)

// DateKey returns the per-day sequence scope for a kind, e.g. "PO-20260830".
// Each scope has its own monotonic counter.
func DateKey(kind Kind, date time.Time) string {
	return string(kind) + "-" + date.Format("20060102")
}

// Format renders a document number from a kind, date and sequence value.
func Format(kind Kind, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", kind, date.Format("20060102"), seq)
}
