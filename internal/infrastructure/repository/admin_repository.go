package repository

import (
	"context"

	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"gorm.io/gorm"
)

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) domainRepo.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) WipeTransactions(ctx context.Context) error {
	// Children before parents; no soft delete here
	tables := []string{
		"sale_items",
		"sales",
		"expense_payments",
		"other_expenses",
		"payments",
		"grn_items",
		"grns",
		"po_items",
		"purchase_orders",
		"intend_items",
		"intends",
		"stock_movements",
		"idempotency_keys",
	}

	db := dbFrom(ctx, r.db)
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
