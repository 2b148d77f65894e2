package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStateCompleted marks a payment that counts toward the PO's
// cumulative paid amount.
const (
	PaymentStateCompleted = "completed"
	PaymentStateVoided    = "voided"
)

// Payment is a vendor payment against a purchase order. The amount is
// validated against the PO's outstanding balance under a row lock, so
// cumulative completed payments never exceed the receivable.
type Payment struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	PaymentNo       string             `gorm:"size:30;unique;not null" json:"payment_no"`
	PurchaseOrderID uuid.UUID          `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	RecordedByID    uuid.UUID          `gorm:"type:uuid;not null;column:recorded_by" json:"recorded_by"`
	Amount          decimal.Decimal    `gorm:"type:decimal(14,2);not null" json:"amount"`
	Method          enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	State           string             `gorm:"size:15;not null;default:'completed'" json:"state"`
	PaymentDate     time.Time          `gorm:"type:date;not null" json:"payment_date"`
	Reference       string             `gorm:"size:100" json:"reference"`
	Notes           string             `gorm:"size:500" json:"notes"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	PurchaseOrder PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"purchase_order,omitempty"`
	RecordedBy    *User         `gorm:"foreignKey:RecordedByID" json:"recorded_by_user,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
