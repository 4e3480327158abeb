package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType,omitempty"`
	UserID        string          `json:"userId"`
	Balance       decimal.Decimal `json:"balance,omitempty"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if !isTenDigits(r.AccountNumber) {
		errs = append(errs, "accountNumber must be exactly 10 digits")
	}
	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}

	accountType := strings.ToUpper(strings.TrimSpace(r.AccountType))
	if accountType != "" &&
		accountType != string(domain.AccountTypeChecking) &&
		accountType != string(domain.AccountTypeSavings) {
		errs = append(errs, "accountType must be CHECKING or SAVINGS")
	}

	if r.Balance.IsNegative() {
		errs = append(errs, "balance cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type AccountResponse struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	UserID        string          `json:"userId"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

func isTenDigits(value string) bool {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) != 10 {
		return false
	}
	return digitsOnly(trimmed)
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
