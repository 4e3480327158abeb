package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an immutable ledger entry. Rows are inserted once,
// never updated or deleted.
type Transaction struct {
	ID            string
	Type          TransactionType
	Amount        decimal.Decimal
	Description   *string
	FromAccountID *string
	ToAccountID   *string
	Status        TransactionStatus
	CreatedAt     time.Time
}

// AppliedTransaction is the committed ledger entry together with the
// post-commit state of the accounts it touched.
type AppliedTransaction struct {
	Transaction Transaction
	FromAccount *Account
	ToAccount   *Account
}
