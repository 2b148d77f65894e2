package enum

// MovementType represents the kind of stock ledger entry
type MovementType string

const (
	MovementTypeIn         MovementType = "in"
	MovementTypeOut        MovementType = "out"
	MovementTypeAdjustment MovementType = "adjustment"
	MovementTypeOpening    MovementType = "opening"
	MovementTypeWastage    MovementType = "wastage"
)

// IsValid reports whether t is a known movement type
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment,
		MovementTypeOpening, MovementTypeWastage:
		return true
	}
	return false
}

// IsInbound reports whether the movement increases stock on hand.
// Adjustments carry their own sign and are handled by the caller.
func (t MovementType) IsInbound() bool {
	return t == MovementTypeIn || t == MovementTypeOpening
}
