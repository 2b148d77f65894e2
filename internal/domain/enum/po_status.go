package enum

// POStatus represents the receiving state of a purchase order.
// Transitions are driven solely by item-level received quantities:
// pending -> confirmed -> partially_received -> received.
type POStatus string

const (
	POStatusPending           POStatus = "pending"
	POStatusConfirmed         POStatus = "confirmed"
	POStatusPartiallyReceived POStatus = "partially_received"
	POStatusReceived          POStatus = "received"
)

// IsValid reports whether s is a known purchase order status
func (s POStatus) IsValid() bool {
	switch s {
	case POStatusPending, POStatusConfirmed, POStatusPartiallyReceived, POStatusReceived:
		return true
	}
	return false
}
