package services_test

import (
	"context"

	"github.com/api-sage/bank-ledger/internal/domain"
)

type mockUserRepository struct {
	createFn     func(ctx context.Context, user domain.User) (domain.User, error)
	getByIDFn    func(ctx context.Context, id string) (domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (domain.User, error)
	listFn       func(ctx context.Context) ([]domain.User, error)
	updateFn     func(ctx context.Context, user domain.User) (domain.User, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (m *mockUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return domain.User{}, domain.ErrRecordNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return domain.User{}, domain.ErrRecordNotFound
}

func (m *mockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockAccountRepository struct {
	createFn             func(ctx context.Context, account domain.Account) (domain.Account, error)
	getByIDFn            func(ctx context.Context, id string) (domain.Account, error)
	getByAccountNumberFn func(ctx context.Context, accountNumber string) (domain.Account, error)
	listFn               func(ctx context.Context) ([]domain.Account, error)
	listByUserIDFn       func(ctx context.Context, userID string) ([]domain.Account, error)
	deactivateFn         func(ctx context.Context, id string) error
	deleteFn             func(ctx context.Context, id string) error
}

func (m *mockAccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	return account, nil
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (m *mockAccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	if m.getByAccountNumberFn != nil {
		return m.getByAccountNumberFn(ctx, accountNumber)
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (m *mockAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockAccountRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	if m.listByUserIDFn != nil {
		return m.listByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockAccountRepository) Deactivate(ctx context.Context, id string) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, id)
	}
	return nil
}

func (m *mockAccountRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockLedgerRepository struct {
	applyFn           func(ctx context.Context, txn domain.Transaction) (domain.AppliedTransaction, error)
	getByIDFn         func(ctx context.Context, id string) (domain.Transaction, error)
	listFn            func(ctx context.Context) ([]domain.Transaction, error)
	listByAccountIDFn func(ctx context.Context, accountID string) ([]domain.Transaction, error)
	applyCalls        int
}

func (m *mockLedgerRepository) Apply(ctx context.Context, txn domain.Transaction) (domain.AppliedTransaction, error) {
	m.applyCalls++
	if m.applyFn != nil {
		return m.applyFn(ctx, txn)
	}
	return domain.AppliedTransaction{Transaction: txn}, nil
}

func (m *mockLedgerRepository) GetByID(ctx context.Context, id string) (domain.Transaction, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return domain.Transaction{}, domain.ErrRecordNotFound
}

func (m *mockLedgerRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockLedgerRepository) ListByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	if m.listByAccountIDFn != nil {
		return m.listByAccountIDFn(ctx, accountID)
	}
	return nil, nil
}
