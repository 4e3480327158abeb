package domain

import (
	"errors"
	"fmt"
)

var ErrRecordNotFound = errors.New("Record not found")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrInvalidAmount = errors.New("amount must be positive and greater than 0")
var ErrInvalidRequest = errors.New("invalid transaction request")
var ErrAccountInactive = errors.New("account is not active")
var ErrTransientStore = errors.New("transient store failure")
var ErrEmailTaken = errors.New("email already registered")
var ErrAccountNumberTaken = errors.New("account number already exists")
var ErrAccountHasTransactions = errors.New("account is referenced by ledger entries")

// TransferSide names which account reference of a transaction failed to
// resolve.
type TransferSide string

const (
	SideFrom TransferSide = "from"
	SideTo   TransferSide = "to"
)

type AccountNotFoundError struct {
	Side      TransferSide
	AccountID string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("%s account with ID %s not found", e.Side, e.AccountID)
}
