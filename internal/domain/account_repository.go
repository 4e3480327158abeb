package domain

import "context"

type AccountRepository interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (Account, error)
	List(ctx context.Context) ([]Account, error)
	ListByUserID(ctx context.Context, userID string) ([]Account, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
