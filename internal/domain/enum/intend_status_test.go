package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntendStatusIsEditable(t *testing.T) {
	assert.True(t, IntendStatusPending.IsEditable())
	assert.True(t, IntendStatusDraft.IsEditable())
	assert.False(t, IntendStatusSubmitted.IsEditable())
	assert.False(t, IntendStatusApproved.IsEditable())
	assert.False(t, IntendStatusFulfilled.IsEditable())
}

func TestMovementTypeIsInbound(t *testing.T) {
	assert.True(t, MovementTypeIn.IsInbound())
	assert.True(t, MovementTypeOpening.IsInbound())
	assert.False(t, MovementTypeOut.IsInbound())
	assert.False(t, MovementTypeWastage.IsInbound())
	assert.False(t, MovementTypeAdjustment.IsInbound())
}
