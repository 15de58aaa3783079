package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs a group of store writes atomically. Only the SQL
// backend provides one; seeding uses it when available.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
