package entity

// Sequence backs document number generation: one monotonic counter per
// (kind, date) scope, e.g. "PO-20260830". Incremented atomically with an
// upsert so concurrent allocations never hand out the same value.
type Sequence struct {
	Scope     string `gorm:"size:40;primary_key" json:"scope"`
	LastValue int64  `gorm:"not null;default:0" json:"last_value"`
}

// TableName returns the table name for the Sequence model
func (Sequence) TableName() string {
	return "sequences"
}
