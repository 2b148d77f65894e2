package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GRN is a goods-received-note: a record of physical receipt against a
// purchase order on a given date, possibly partial and repeatable.
type GRN struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	GRNNo           string          `gorm:"size:30;unique;not null" json:"grn_no"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ReceivedByID    uuid.UUID       `gorm:"type:uuid;not null;column:received_by" json:"received_by"`
	ReceivedDate    time.Time       `gorm:"type:date;not null" json:"received_date"`
	TotalValue      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_value"`
	Notes           string          `gorm:"size:500" json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	PurchaseOrder PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"purchase_order,omitempty"`
	ReceivedBy    *User         `gorm:"foreignKey:ReceivedByID" json:"received_by_user,omitempty"`
	Items         []GRNItem     `gorm:"foreignKey:GRNID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new GRN
func (g *GRN) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the GRN model
func (GRN) TableName() string {
	return "grns"
}

// GRNItem is a received line on a GRN. UnitPriceOrdered is the contract
// price from the PO line, UnitPriceActual is the invoiced price.
type GRNItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	GRNID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"grn_id"`
	POItemID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"po_item_id"`
	IngredientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	QuantityReceived decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"quantity_received"`
	UnitPriceOrdered decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unit_price_ordered"`
	UnitPriceActual  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unit_price_actual"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"line_total"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relationships
	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// BeforeCreate generates a UUID before creating a new GRN item
func (gi *GRNItem) BeforeCreate(tx *gorm.DB) error {
	if gi.ID == uuid.Nil {
		gi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the GRNItem model
func (GRNItem) TableName() string {
	return "grn_items"
}
