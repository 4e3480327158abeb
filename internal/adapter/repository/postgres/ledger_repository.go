package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/logger"
)

type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Blocked row locks fail after this long instead of waiting forever.
const lockTimeout = "3s"

type accountRef struct {
	side domain.TransferSide
	id   string
}

// Apply moves money atomically: every referenced account is locked in
// ascending-id order, the balance check runs against the locked row,
// and the ledger insert commits together with the balance updates.
func (r *LedgerRepository) Apply(ctx context.Context, txn domain.Transaction) (domain.AppliedTransaction, error) {
	refs := make([]accountRef, 0, 2)
	if txn.FromAccountID != nil {
		refs = append(refs, accountRef{side: domain.SideFrom, id: *txn.FromAccountID})
	}
	if txn.ToAccountID != nil {
		refs = append(refs, accountRef{side: domain.SideTo, id: *txn.ToAccountID})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].id < refs[j].id })

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return domain.AppliedTransaction{}, fmt.Errorf("begin ledger tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", lockTimeout)); err != nil {
		return domain.AppliedTransaction{}, fmt.Errorf("set lock timeout: %w", err)
	}

	locked := make(map[string]*domain.Account, len(refs))
	for _, ref := range refs {
		account, err := lockAccount(ctx, tx, ref.id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.AppliedTransaction{}, &domain.AccountNotFoundError{Side: ref.side, AccountID: ref.id}
			}
			return domain.AppliedTransaction{}, err
		}
		if !account.IsActive {
			return domain.AppliedTransaction{}, fmt.Errorf("%s account %s: %w", ref.side, ref.id, domain.ErrAccountInactive)
		}
		locked[ref.id] = account
	}

	var fromAccount, toAccount *domain.Account
	if txn.FromAccountID != nil {
		fromAccount = locked[*txn.FromAccountID]
	}
	if txn.ToAccountID != nil {
		toAccount = locked[*txn.ToAccountID]
	}

	// Funds check on the locked value, never a pre-lock snapshot
	if fromAccount != nil && fromAccount.Balance.LessThan(txn.Amount) {
		return domain.AppliedTransaction{}, domain.ErrInsufficientBalance
	}

	if fromAccount != nil {
		fromAccount.Balance = fromAccount.Balance.Sub(txn.Amount)
		if err := writeBalance(ctx, tx, fromAccount); err != nil {
			return domain.AppliedTransaction{}, err
		}
	}
	if toAccount != nil {
		toAccount.Balance = toAccount.Balance.Add(txn.Amount)
		if err := writeBalance(ctx, tx, toAccount); err != nil {
			return domain.AppliedTransaction{}, err
		}
	}

	const insertQuery = `
INSERT INTO transactions (
	id,
	type,
	amount,
	description,
	from_account_id,
	to_account_id,
	status
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at`

	var createdAt time.Time
	if err := tx.QueryRowContext(
		ctx,
		insertQuery,
		txn.ID,
		txn.Type,
		txn.Amount,
		txn.Description,
		txn.FromAccountID,
		txn.ToAccountID,
		txn.Status,
	).Scan(&createdAt); err != nil {
		logger.Error("ledger repository insert failed", err, logger.Fields{
			"transactionId": txn.ID,
			"type":          txn.Type,
		})
		return domain.AppliedTransaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	txn.CreatedAt = createdAt

	if err := tx.Commit(); err != nil {
		return domain.AppliedTransaction{}, fmt.Errorf("commit ledger tx: %w", err)
	}

	return domain.AppliedTransaction{
		Transaction: txn,
		FromAccount: fromAccount,
		ToAccount:   toAccount,
	}, nil
}

func lockAccount(ctx context.Context, tx *sql.Tx, id string) (*domain.Account, error) {
	const query = `
SELECT id, account_number, account_type, balance, user_id, is_active, created_at, updated_at
FROM accounts
WHERE id = $1
FOR UPDATE`

	var account domain.Account
	if err := tx.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.AccountNumber,
		&account.AccountType,
		&account.Balance,
		&account.UserID,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("lock account %s: %w", id, err)
	}

	return &account, nil
}

func writeBalance(ctx context.Context, tx *sql.Tx, account *domain.Account) error {
	const query = `
UPDATE accounts
SET balance = $2,
    updated_at = NOW()
WHERE id = $1`

	if _, err := tx.ExecContext(ctx, query, account.ID, account.Balance); err != nil {
		return fmt.Errorf("update balance for account %s: %w", account.ID, err)
	}

	return nil
}

const transactionColumns = `id, type, amount, description, from_account_id, to_account_id, status, created_at`

func (r *LedgerRepository) GetByID(ctx context.Context, id string) (domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	return scanTransaction(r.db.QueryRowContext(ctx, query, id))
}

func (r *LedgerRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *LedgerRepository) ListByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	const query = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE from_account_id = $1 OR to_account_id = $1
ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list transactions by account: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransaction(row *sql.Row) (domain.Transaction, error) {
	var (
		txn           domain.Transaction
		description   sql.NullString
		fromAccountID sql.NullString
		toAccountID   sql.NullString
	)

	if err := row.Scan(
		&txn.ID,
		&txn.Type,
		&txn.Amount,
		&description,
		&fromAccountID,
		&toAccountID,
		&txn.Status,
		&txn.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, domain.ErrRecordNotFound
		}
		return domain.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	assignNullable(&txn, description, fromAccountID, toAccountID)

	return txn, nil
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	for rows.Next() {
		var (
			txn           domain.Transaction
			description   sql.NullString
			fromAccountID sql.NullString
			toAccountID   sql.NullString
		)
		if err := rows.Scan(
			&txn.ID,
			&txn.Type,
			&txn.Amount,
			&description,
			&fromAccountID,
			&toAccountID,
			&txn.Status,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		assignNullable(&txn, description, fromAccountID, toAccountID)
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return transactions, nil
}

func assignNullable(txn *domain.Transaction, description, fromAccountID, toAccountID sql.NullString) {
	if description.Valid {
		value := description.String
		txn.Description = &value
	}
	if fromAccountID.Valid {
		value := fromAccountID.String
		txn.FromAccountID = &value
	}
	if toAccountID.Valid {
		value := toAccountID.String
		txn.ToAccountID = &value
	}
}
