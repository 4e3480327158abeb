package domain

import "context"

// LedgerRepository owns the atomic session that moves money. Apply
// executes the whole balance check-and-update plus the ledger insert as
// one all-or-nothing unit; a returned error means no effect is visible.
type LedgerRepository interface {
	Apply(ctx context.Context, txn Transaction) (AppliedTransaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	List(ctx context.Context) ([]Transaction, error)
	ListByAccountID(ctx context.Context, accountID string) ([]Transaction, error)
}
