package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accessFixture() (*mockUserRepository, *mockAccountRepository, *mockLedgerRepository) {
	accounts := map[string]domain.Account{
		"acc-alice": {ID: "acc-alice", UserID: "alice"},
		"acc-bob":   {ID: "acc-bob", UserID: "bob"},
	}
	transactions := map[string]domain.Transaction{
		"txn-transfer": {
			ID:            "txn-transfer",
			Type:          domain.TransactionTypeTransfer,
			FromAccountID: strPtr("acc-alice"),
			ToAccountID:   strPtr("acc-bob"),
		},
		"txn-deposit": {
			ID:          "txn-deposit",
			Type:        domain.TransactionTypeDeposit,
			ToAccountID: strPtr("acc-bob"),
		},
	}

	accountRepo := &mockAccountRepository{
		getByIDFn: func(ctx context.Context, id string) (domain.Account, error) {
			account, ok := accounts[id]
			if !ok {
				return domain.Account{}, domain.ErrRecordNotFound
			}
			return account, nil
		},
	}
	ledgerRepo := &mockLedgerRepository{
		getByIDFn: func(ctx context.Context, id string) (domain.Transaction, error) {
			txn, ok := transactions[id]
			if !ok {
				return domain.Transaction{}, domain.ErrRecordNotFound
			}
			return txn, nil
		},
	}
	return &mockUserRepository{}, accountRepo, ledgerRepo
}

func strPtr(s string) *string { return &s }

func TestAccessServiceAdminBypassesOwnership(t *testing.T) {
	userRepo, accountRepo, ledgerRepo := accessFixture()
	service := services.NewAccessService(userRepo, accountRepo, ledgerRepo)
	admin := domain.Principal{ID: "root", Role: domain.RoleAdmin}

	for _, kind := range []domain.ResourceKind{domain.ResourceAccount, domain.ResourceUser, domain.ResourceTransaction} {
		allowed, err := service.CanAccess(context.Background(), admin, kind, "acc-alice")
		require.NoError(t, err)
		assert.True(t, allowed, "kind %s", kind)
	}
}

func TestAccessServiceEmptyResourceIDAllows(t *testing.T) {
	userRepo, accountRepo, ledgerRepo := accessFixture()
	service := services.NewAccessService(userRepo, accountRepo, ledgerRepo)
	principal := domain.Principal{ID: "alice", Role: domain.RoleUser}

	allowed, err := service.CanAccess(context.Background(), principal, domain.ResourceAccount, "  ")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAccessServiceAccountOwnership(t *testing.T) {
	userRepo, accountRepo, ledgerRepo := accessFixture()
	service := services.NewAccessService(userRepo, accountRepo, ledgerRepo)

	allowed, err := service.CanAccess(context.Background(), domain.Principal{ID: "alice", Role: domain.RoleUser}, domain.ResourceAccount, "acc-alice")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.CanAccess(context.Background(), domain.Principal{ID: "alice", Role: domain.RoleUser}, domain.ResourceAccount, "acc-bob")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAccessServiceUserSelfOnly(t *testing.T) {
	userRepo, accountRepo, ledgerRepo := accessFixture()
	service := services.NewAccessService(userRepo, accountRepo, ledgerRepo)

	allowed, err := service.CanAccess(context.Background(), domain.Principal{ID: "alice", Role: domain.RoleUser}, domain.ResourceUser, "alice")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.CanAccess(context.Background(), domain.Principal{ID: "alice", Role: domain.RoleUser}, domain.ResourceUser, "bob")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAccessServiceTransactionOwnershipEitherSide(t *testing.T) {
	userRepo, accountRepo, ledgerRepo := accessFixture()
	service := services.NewAccessService(userRepo, accountRepo, ledgerRepo)

	// alice owns the from side, bob owns the to side.
	for _, principalID := range []string{"alice", "bob"} {
		allowed, err := service.CanAccess(context.Background(), domain.Principal{ID: principalID, Role: domain.RoleUser}, domain.ResourceTransaction, "txn-transfer")
		require.NoError(t, err)
		assert.True(t, allowed, "principal %s", principalID)
	}

	allowed, err := service.CanAccess(context.Background(), domain.Principal{ID: "carol", Role: domain.RoleUser}, domain.ResourceTransaction, "txn-transfer")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAccessServiceTransactionWithSingleSide(t *testing.T) {
	userRepo, accountRepo, ledgerRepo := accessFixture()
	service := services.NewAccessService(userRepo, accountRepo, ledgerRepo)

	allowed, err := service.CanAccess(context.Background(), domain.Principal{ID: "bob", Role: domain.RoleUser}, domain.ResourceTransaction, "txn-deposit")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.CanAccess(context.Background(), domain.Principal{ID: "alice", Role: domain.RoleUser}, domain.ResourceTransaction, "txn-deposit")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAccessServiceMissingResourceDenies(t *testing.T) {
	userRepo, accountRepo, ledgerRepo := accessFixture()
	service := services.NewAccessService(userRepo, accountRepo, ledgerRepo)
	principal := domain.Principal{ID: "alice", Role: domain.RoleUser}

	allowed, err := service.CanAccess(context.Background(), principal, domain.ResourceAccount, "acc-missing")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = service.CanAccess(context.Background(), principal, domain.ResourceTransaction, "txn-missing")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAccessServiceUnknownKindDenies(t *testing.T) {
	userRepo, accountRepo, ledgerRepo := accessFixture()
	service := services.NewAccessService(userRepo, accountRepo, ledgerRepo)

	allowed, err := service.CanAccess(context.Background(), domain.Principal{ID: "alice", Role: domain.RoleUser}, domain.ResourceKind("REPORT"), "rep-1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAccessServiceStoreErrorsPropagate(t *testing.T) {
	userRepo, _, ledgerRepo := accessFixture()
	accountRepo := &mockAccountRepository{
		getByIDFn: func(ctx context.Context, id string) (domain.Account, error) {
			return domain.Account{}, fmt.Errorf("connection reset")
		},
	}
	service := services.NewAccessService(userRepo, accountRepo, ledgerRepo)

	allowed, err := service.CanAccess(context.Background(), domain.Principal{ID: "alice", Role: domain.RoleUser}, domain.ResourceAccount, "acc-alice")
	require.Error(t, err)
	assert.False(t, allowed)
}
