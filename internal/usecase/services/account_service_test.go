package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/usecase/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountServiceCreateAccountDefaultsToChecking(t *testing.T) {
	var created domain.Account
	accountRepo := &mockAccountRepository{
		createFn: func(ctx context.Context, account domain.Account) (domain.Account, error) {
			created = account
			return account, nil
		},
	}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id string) (domain.User, error) {
			return domain.User{ID: id}, nil
		},
	}
	service := services.NewAccountService(accountRepo, userRepo)

	response, err := service.CreateAccount(context.Background(), models.CreateAccountRequest{
		AccountNumber: "1000000001",
		UserID:        "user-1",
		Balance:       decimal.RequireFromString("250.00"),
	})

	require.NoError(t, err)
	require.True(t, response.Success)
	assert.Equal(t, domain.AccountTypeChecking, created.AccountType)
	assert.True(t, created.IsActive)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "CHECKING", response.Data.AccountType)
}

func TestAccountServiceCreateAccountRejectsBadNumber(t *testing.T) {
	accountRepo := &mockAccountRepository{}
	service := services.NewAccountService(accountRepo, &mockUserRepository{})

	response, err := service.CreateAccount(context.Background(), models.CreateAccountRequest{
		AccountNumber: "12345",
		UserID:        "user-1",
	})

	require.Error(t, err)
	assert.Equal(t, "validation failed", response.Message)
	assert.Contains(t, response.Errors[0], "accountNumber must be exactly 10 digits")
}

func TestAccountServiceCreateAccountUnknownOwner(t *testing.T) {
	service := services.NewAccountService(&mockAccountRepository{}, &mockUserRepository{})

	response, err := service.CreateAccount(context.Background(), models.CreateAccountRequest{
		AccountNumber: "1000000001",
		UserID:        "user-missing",
	})

	require.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Equal(t, "User not found", response.Message)
}

func TestAccountServiceCreateAccountDuplicateNumber(t *testing.T) {
	accountRepo := &mockAccountRepository{
		createFn: func(ctx context.Context, account domain.Account) (domain.Account, error) {
			return domain.Account{}, domain.ErrAccountNumberTaken
		},
	}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id string) (domain.User, error) {
			return domain.User{ID: id}, nil
		},
	}
	service := services.NewAccountService(accountRepo, userRepo)

	response, err := service.CreateAccount(context.Background(), models.CreateAccountRequest{
		AccountNumber: "1000000001",
		UserID:        "user-1",
	})

	require.ErrorIs(t, err, domain.ErrAccountNumberTaken)
	assert.Equal(t, "Account number already exists", response.Message)
}

func TestAccountServiceGetBalance(t *testing.T) {
	accountRepo := &mockAccountRepository{
		getByIDFn: func(ctx context.Context, id string) (domain.Account, error) {
			return domain.Account{ID: id, Balance: decimal.RequireFromString("4500.00")}, nil
		},
	}
	service := services.NewAccountService(accountRepo, &mockUserRepository{})

	response, err := service.GetBalance(context.Background(), "acc-1")

	require.NoError(t, err)
	require.NotNil(t, response.Data)
	assert.True(t, response.Data.Balance.Equal(decimal.RequireFromString("4500.00")))
}

func TestAccountServiceGetAccountNotFound(t *testing.T) {
	service := services.NewAccountService(&mockAccountRepository{}, &mockUserRepository{})

	response, err := service.GetAccount(context.Background(), "acc-missing")

	require.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Equal(t, "Account not found", response.Message)
}

func TestAccountServiceDeactivateReturnsFreshState(t *testing.T) {
	active := true
	accountRepo := &mockAccountRepository{
		deactivateFn: func(ctx context.Context, id string) error {
			active = false
			return nil
		},
		getByIDFn: func(ctx context.Context, id string) (domain.Account, error) {
			return domain.Account{ID: id, IsActive: active}, nil
		},
	}
	service := services.NewAccountService(accountRepo, &mockUserRepository{})

	response, err := service.DeactivateAccount(context.Background(), "acc-1")

	require.NoError(t, err)
	require.NotNil(t, response.Data)
	assert.False(t, response.Data.IsActive)
}

func TestAccountServiceDeleteBlockedByLedgerEntries(t *testing.T) {
	accountRepo := &mockAccountRepository{
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrAccountHasTransactions
		},
	}
	service := services.NewAccountService(accountRepo, &mockUserRepository{})

	response, err := service.DeleteAccount(context.Background(), "acc-1")

	require.ErrorIs(t, err, domain.ErrAccountHasTransactions)
	assert.Equal(t, "Account has ledger entries", response.Message)
}
