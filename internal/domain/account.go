package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
)

type Account struct {
	ID            string
	AccountNumber string
	AccountType   AccountType
	Balance       decimal.Decimal
	UserID        string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
