package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recipe is a menu item with its per-portion ingredient composition
type Recipe struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name         string          `gorm:"size:150;not null;uniqueIndex" json:"name"`
	Category     string          `gorm:"size:50;index" json:"category"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"selling_price"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

// BeforeCreate generates a UUID before creating a new recipe
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Recipe model
func (Recipe) TableName() string {
	return "recipes"
}

// CostPerPortion derives the recipe cost from the loaded ingredient
// lines at each ingredient's last purchase price.
func (r *Recipe) CostPerPortion() decimal.Decimal {
	cost := decimal.Zero
	for _, ri := range r.Ingredients {
		cost = cost.Add(ri.Quantity.Mul(ri.Ingredient.LastPrice))
	}
	return cost.Round(2)
}

// RecipeIngredient is one ingredient quantity in a recipe
type RecipeIngredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Quantity     decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"quantity"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relationships
	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// BeforeCreate generates a UUID before creating a new recipe ingredient
func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RecipeIngredient model
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
