package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseOrder is a vendor order, optionally derived from an intend.
// Receiving rollups (ReceivedItemsCount, ReceivedPercentage,
// ActualReceivableAmount) are recomputed from the items on every GRN
// posting; they are never edited directly.
type PurchaseOrder struct {
	ID                     uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	PONo                   string             `gorm:"size:30;unique;not null" json:"po_no"`
	VendorID               uuid.UUID          `gorm:"type:uuid;not null;index" json:"vendor_id"`
	IntendID               *uuid.UUID         `gorm:"type:uuid;index" json:"intend_id,omitempty"`
	CreatedByID            uuid.UUID          `gorm:"type:uuid;not null;column:created_by" json:"created_by"`
	OrderDate              time.Time          `gorm:"type:date;not null" json:"order_date"`
	ExpectedDate           *time.Time         `gorm:"type:date" json:"expected_date,omitempty"`
	Status                 enum.POStatus      `gorm:"size:25;not null;default:'pending'" json:"status"`
	PaymentStatus          enum.PaymentStatus `gorm:"size:15;not null;default:'unpaid'" json:"payment_status"`
	TotalAmount            decimal.Decimal    `gorm:"type:decimal(14,2);not null;default:0" json:"total_amount"`
	ActualReceivableAmount decimal.Decimal    `gorm:"type:decimal(14,2);not null;default:0" json:"actual_receivable_amount"`
	ReceivedItemsCount     int                `gorm:"not null;default:0" json:"received_items_count"`
	TotalItemsCount        int                `gorm:"not null;default:0" json:"total_items_count"`
	ReceivedPercentage     decimal.Decimal    `gorm:"type:decimal(5,2);not null;default:0" json:"received_percentage"`
	Notes                  string             `gorm:"size:500" json:"notes"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
	DeletedAt              gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Vendor    Vendor   `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Intend    *Intend  `gorm:"foreignKey:IntendID" json:"intend,omitempty"`
	CreatedBy *User    `gorm:"foreignKey:CreatedByID" json:"created_by_user,omitempty"`
	Items     []POItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase order
func (po *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// ReceivableAmount returns the amount payable against this PO: the
// GRN-derived receivable when goods have been received, otherwise the
// ordered total.
func (po *PurchaseOrder) ReceivableAmount() decimal.Decimal {
	if po.ActualReceivableAmount.GreaterThan(decimal.Zero) {
		return po.ActualReceivableAmount
	}
	return po.TotalAmount
}

// POItem is an ordered line on a purchase order
type POItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	IngredientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	QuantityOrdered  decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0" json:"quantity_received"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unit_price"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"line_total"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relationships
	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// BeforeCreate generates a UUID before creating a new PO item
func (pi *POItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the POItem model
func (POItem) TableName() string {
	return "po_items"
}

// IsFullyReceived reports whether the ordered quantity has been received
func (pi *POItem) IsFullyReceived() bool {
	return pi.QuantityReceived.GreaterThanOrEqual(pi.QuantityOrdered)
}
