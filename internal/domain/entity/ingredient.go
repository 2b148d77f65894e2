package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ingredient is a purchasable stock item. CurrentStock is the running
// balance of the stock movement ledger and is only mutated through
// ledger postings, never written directly by business logic.
type Ingredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name         string          `gorm:"size:150;not null;uniqueIndex" json:"name"`
	Unit         string          `gorm:"size:30;not null" json:"unit"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0" json:"current_stock"`
	MinStock     decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0" json:"min_stock"`
	LastPrice    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"last_price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new ingredient
func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Ingredient model
func (Ingredient) TableName() string {
	return "ingredients"
}

// IsLowStock reports whether the ingredient is at or below its minimum level
func (i *Ingredient) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.MinStock)
}
