package repository

import "context"

// Transactor runs a function inside a single database transaction. The
// context passed to fn carries the transaction; repositories resolve it
// so every call inside fn shares one atomic unit of work. Multi-row
// effects such as a GRN with its ledger postings and PO rollups always
// go through this.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
