package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vendor represents a supplier of ingredients
type Vendor struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:150;not null" json:"name"`
	ContactPerson string         `gorm:"size:100" json:"contact_person"`
	Phone         string         `gorm:"size:30" json:"phone"`
	Email         string         `gorm:"size:150" json:"email"`
	Address       string         `gorm:"size:255" json:"address"`
	GSTNumber     string         `gorm:"size:30" json:"gst_number"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new vendor
func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
