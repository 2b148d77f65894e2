package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OtherExpense is a non-purchase expense (rent, utilities, services)
// with partial-payment tracking analogous to PO payments.
type OtherExpense struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Description   string             `gorm:"size:255;not null" json:"description"`
	Category      string             `gorm:"size:50;not null;index" json:"category"`
	Amount        decimal.Decimal    `gorm:"type:decimal(14,2);not null" json:"amount"`
	TaxAmount     decimal.Decimal    `gorm:"type:decimal(14,2);not null;default:0" json:"tax_amount"`
	PaymentStatus enum.PaymentStatus `gorm:"size:15;not null;default:'unpaid'" json:"payment_status"`
	ExpenseDate   time.Time          `gorm:"type:date;not null;index" json:"expense_date"`
	VendorID      *uuid.UUID         `gorm:"type:uuid;index" json:"vendor_id,omitempty"`
	CreatedByID   uuid.UUID          `gorm:"type:uuid;not null;column:created_by" json:"created_by"`
	Notes         string             `gorm:"size:500" json:"notes"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Vendor   *Vendor          `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Payments []ExpensePayment `gorm:"foreignKey:ExpenseID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *OtherExpense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OtherExpense model
func (OtherExpense) TableName() string {
	return "other_expenses"
}

// TotalPayable returns the expense amount including tax
func (e *OtherExpense) TotalPayable() decimal.Decimal {
	return e.Amount.Add(e.TaxAmount)
}

// ExpensePayment is a payment against an other-expense
type ExpensePayment struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	PaymentNo    string             `gorm:"size:30;unique;not null" json:"payment_no"`
	ExpenseID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"expense_id"`
	RecordedByID uuid.UUID          `gorm:"type:uuid;not null;column:recorded_by" json:"recorded_by"`
	Amount       decimal.Decimal    `gorm:"type:decimal(14,2);not null" json:"amount"`
	Method       enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	State        string             `gorm:"size:15;not null;default:'completed'" json:"state"`
	PaymentDate  time.Time          `gorm:"type:date;not null" json:"payment_date"`
	Reference    string             `gorm:"size:100" json:"reference"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new expense payment
func (ep *ExpensePayment) BeforeCreate(tx *gorm.DB) error {
	if ep.ID == uuid.Nil {
		ep.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExpensePayment model
func (ExpensePayment) TableName() string {
	return "expense_payments"
}
