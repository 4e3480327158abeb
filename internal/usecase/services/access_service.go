package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/logger"
)

// AccessService decides whether a principal may act on a resource, by
// role or by ownership chain. It performs reads only, always against
// current committed state.
type AccessService struct {
	userRepo    domain.UserRepository
	accountRepo domain.AccountRepository
	ledgerRepo  domain.LedgerRepository
}

func NewAccessService(
	userRepo domain.UserRepository,
	accountRepo domain.AccountRepository,
	ledgerRepo domain.LedgerRepository,
) *AccessService {
	return &AccessService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

func (s *AccessService) CanAccess(ctx context.Context, principal domain.Principal, kind domain.ResourceKind, resourceID string) (bool, error) {
	// No target yet means nothing to own. Creation requests are gated
	// by the engine's own existence and shape checks instead.
	if strings.TrimSpace(resourceID) == "" {
		return true, nil
	}

	if principal.IsAdmin() {
		return true, nil
	}

	switch kind {
	case domain.ResourceAccount:
		return s.ownsAccount(ctx, principal.ID, resourceID)
	case domain.ResourceUser:
		return resourceID == principal.ID, nil
	case domain.ResourceTransaction:
		return s.ownsTransaction(ctx, principal.ID, resourceID)
	default:
		logger.Info("access service unknown resource kind denied", logger.Fields{
			"kind":        string(kind),
			"principalId": principal.ID,
		})
		return false, nil
	}
}

func (s *AccessService) ownsAccount(ctx context.Context, userID, accountID string) (bool, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("resolve account ownership: %w", err)
	}

	return account.UserID == userID, nil
}

// ownsTransaction resolves the ownership chain: a transaction belongs
// to whoever owns either account it touches.
func (s *AccessService) ownsTransaction(ctx context.Context, userID, transactionID string) (bool, error) {
	txn, err := s.ledgerRepo.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("resolve transaction ownership: %w", err)
	}

	if txn.FromAccountID != nil {
		owns, err := s.ownsAccount(ctx, userID, *txn.FromAccountID)
		if err != nil {
			return false, err
		}
		if owns {
			return true, nil
		}
	}

	if txn.ToAccountID != nil {
		return s.ownsAccount(ctx, userID, *txn.ToAccountID)
	}

	return false, nil
}
