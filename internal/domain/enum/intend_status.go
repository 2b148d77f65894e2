package enum

// IntendStatus represents the lifecycle state of an intend (requisition)
type IntendStatus string

const (
	IntendStatusPending   IntendStatus = "pending"
	IntendStatusDraft     IntendStatus = "draft"
	IntendStatusSubmitted IntendStatus = "submitted"
	IntendStatusApproved  IntendStatus = "approved"
	// partially_fulfilled is accepted on stored rows for forward
	// compatibility; conversion currently fulfills an intend in one step.
	IntendStatusPartiallyFulfilled IntendStatus = "partially_fulfilled"
	IntendStatusFulfilled          IntendStatus = "fulfilled"
)

// IsValid reports whether s is a known intend status
func (s IntendStatus) IsValid() bool {
	switch s {
	case IntendStatusPending, IntendStatusDraft, IntendStatusSubmitted,
		IntendStatusApproved, IntendStatusPartiallyFulfilled, IntendStatusFulfilled:
		return true
	}
	return false
}

// IsEditable reports whether the intend can still be modified or deleted
func (s IntendStatus) IsEditable() bool {
	return s == IntendStatusPending || s == IntendStatusDraft
}
