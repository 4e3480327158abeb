package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, account_number, account_type, balance, user_id, is_active, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	id,
	account_number,
	account_type,
	balance,
	user_id,
	is_active
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at, updated_at`

	var createdAt time.Time
	var updatedAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.ID,
		account.AccountNumber,
		account.AccountType,
		account.Balance,
		account.UserID,
		account.IsActive,
	).Scan(&createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, domain.ErrAccountNumberTaken
		}
		logger.Error("account repository create failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.CreatedAt = createdAt
	account.UpdatedAt = updatedAt

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, accountNumber))
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *AccountRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts by user: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *AccountRepository) Deactivate(ctx context.Context, id string) error {
	const query = `
UPDATE accounts
SET is_active = FALSE,
    updated_at = NOW()
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("account repository deactivate failed", err, logger.Fields{
			"accountId": id,
		})
		return fmt.Errorf("deactivate account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate account rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM accounts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrAccountHasTransactions
		}
		logger.Error("account repository delete failed", err, logger.Fields{
			"accountId": id,
		})
		return fmt.Errorf("delete account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *AccountRepository) scanOne(row *sql.Row) (domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
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
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("scan account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) scanAll(rows *sql.Rows) ([]domain.Account, error) {
	accounts := []domain.Account{}
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.AccountNumber,
			&account.AccountType,
			&account.Balance,
			&account.UserID,
			&account.IsActive,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}
