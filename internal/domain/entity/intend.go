package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Intend is an internal requisition for ingredient quantities, the
// precursor to a purchase order.
type Intend struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	IntendNo    string            `gorm:"size:30;unique;not null" json:"intend_no"`
	Status      enum.IntendStatus `gorm:"size:25;not null;default:'pending'" json:"status"`
	VendorID    *uuid.UUID        `gorm:"type:uuid;index" json:"vendor_id,omitempty"`
	RequestedBy uuid.UUID         `gorm:"type:uuid;not null;index" json:"requested_by"`
	Notes       string            `gorm:"size:500" json:"notes"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Vendor    *Vendor      `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Requester *User        `gorm:"foreignKey:RequestedBy" json:"requester,omitempty"`
	Items     []IntendItem `gorm:"foreignKey:IntendID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new intend
func (i *Intend) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Intend model
func (Intend) TableName() string {
	return "intends"
}

// IntendItem is a requested ingredient quantity on an intend
type IntendItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	IntendID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"intend_id"`
	IngredientID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	QuantityRequested decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"quantity_requested"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// Relationships
	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// BeforeCreate generates a UUID before creating a new intend item
func (ii *IntendItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IntendItem model
func (IntendItem) TableName() string {
	return "intend_items"
}
