package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is a recorded sale transaction. Revenue, cost and profit are
// captured per line at recording time so later recipe or price edits do
// not rewrite history.
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleNo       string          `gorm:"size:30;unique;not null" json:"sale_no"`
	SaleDate     time.Time       `gorm:"type:date;not null;index" json:"sale_date"`
	TotalRevenue decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_revenue"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_cost"`
	TotalProfit  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_profit"`
	RecordedByID uuid.UUID       `gorm:"type:uuid;not null;column:recorded_by" json:"recorded_by"`
	Notes        string          `gorm:"size:500" json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	RecordedBy *User      `gorm:"foreignKey:RecordedByID" json:"recorded_by_user,omitempty"`
	Items      []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one recipe line on a sale
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	RecipeID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unit_price"`
	Revenue   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"revenue"`
	Cost      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"cost"`
	Profit    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"profit"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Recipe Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
