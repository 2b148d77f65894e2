package repository

import "context"

// AdminRepository performs bulk maintenance operations. These bypass
// the per-entity repositories on purpose: the wipe is a hard delete of
// transactional history, not a soft delete.
type AdminRepository interface {
	// WipeTransactions hard-deletes all transactional data: sales,
	// payments, GRNs, POs, intends, stock movements, expenses and
	// idempotency keys. Master data (users, vendors, ingredients,
	// recipes) is preserved.
	WipeTransactions(ctx context.Context) error
}
