package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockMovement is an append-only stock ledger entry. Quantity is signed:
// positive for inbound, negative for outbound. BalanceAfter is the
// ingredient's running balance immediately after this entry, maintained
// under a row lock on the ingredient.
type StockMovement struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	IngredientID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Type          enum.MovementType `gorm:"size:15;not null;index" json:"type"`
	Quantity      decimal.Decimal   `gorm:"type:decimal(14,3);not null" json:"quantity"`
	BalanceAfter  decimal.Decimal   `gorm:"type:decimal(14,3);not null" json:"balance_after"`
	UnitCost      decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0" json:"unit_cost"`
	ReferenceType string            `gorm:"size:20" json:"reference_type"`
	ReferenceID   *uuid.UUID        `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	Notes         string            `gorm:"size:255" json:"notes"`
	CreatedByID   *uuid.UUID        `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`

	// Relationships
	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// BeforeCreate generates a UUID before creating a new stock movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
