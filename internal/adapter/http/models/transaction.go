package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID string          `json:"fromAccountId,omitempty"`
	ToAccountID   string          `json:"toAccountId,omitempty"`
	Description   string          `json:"description,omitempty"`
}

func (r CreateTransactionRequest) Validate() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	from := strings.TrimSpace(r.FromAccountID)
	to := strings.TrimSpace(r.ToAccountID)

	switch domain.TransactionType(strings.ToUpper(strings.TrimSpace(r.Type))) {
	case domain.TransactionTypeDeposit:
		if to == "" {
			return fmt.Errorf("deposit requires toAccountId: %w", domain.ErrInvalidRequest)
		}
		if from != "" {
			return fmt.Errorf("deposit must not carry fromAccountId: %w", domain.ErrInvalidRequest)
		}
	case domain.TransactionTypeWithdrawal:
		if from == "" {
			return fmt.Errorf("withdrawal requires fromAccountId: %w", domain.ErrInvalidRequest)
		}
		if to != "" {
			return fmt.Errorf("withdrawal must not carry toAccountId: %w", domain.ErrInvalidRequest)
		}
	case domain.TransactionTypeTransfer:
		if from == "" || to == "" {
			return fmt.Errorf("transfer requires both fromAccountId and toAccountId: %w", domain.ErrInvalidRequest)
		}
		if from == to {
			return fmt.Errorf("fromAccountId and toAccountId cannot be the same: %w", domain.ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("type must be DEPOSIT, WITHDRAWAL or TRANSFER: %w", domain.ErrInvalidRequest)
	}

	return nil
}

type TransferRequest struct {
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
}

type DepositRequest struct {
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

type WithdrawRequest struct {
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

type AccountSummary struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
}

type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	FromAccount *AccountSummary `json:"fromAccount,omitempty"`
	ToAccount   *AccountSummary `json:"toAccount,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type TransactionRecord struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	FromAccountID string          `json:"fromAccountId,omitempty"`
	ToAccountID   string          `json:"toAccountId,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}
