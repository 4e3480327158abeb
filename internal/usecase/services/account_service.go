package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/logger"
	"github.com/google/uuid"
)

type AccountService struct {
	accountRepo domain.AccountRepository
	userRepo    domain.UserRepository
}

func NewAccountService(accountRepo domain.AccountRepository, userRepo domain.UserRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo, userRepo: userRepo}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	if _, err := s.userRepo.GetByID(ctx, strings.TrimSpace(req.UserID)); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("User not found"), err
		}
		logger.Error("account service create account owner check failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	accountType := domain.AccountType(strings.ToUpper(strings.TrimSpace(req.AccountType)))
	if accountType == "" {
		accountType = domain.AccountTypeChecking
	}

	account := domain.Account{
		ID:            uuid.NewString(),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		AccountType:   accountType,
		Balance:       req.Balance,
		UserID:        strings.TrimSpace(req.UserID),
		IsActive:      true,
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNumberTaken) {
			return commons.ErrorResponse[models.AccountResponse]("Account number already exists", err.Error()), err
		}
		logger.Error("account service create account repository failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
	})

	return commons.SuccessResponse("account created successfully", mapAccountToResponse(created)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error) {
	if strings.TrimSpace(id) == "" {
		err := fmt.Errorf("id is required")
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		logger.Error("account service get account failed", err, logger.Fields{
			"accountId": id,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account retrieved", mapAccountToResponse(account)), nil
}

func (s *AccountService) GetBalance(ctx context.Context, id string) (commons.Response[models.BalanceResponse], error) {
	if strings.TrimSpace(id) == "" {
		err := fmt.Errorf("id is required")
		return commons.ErrorResponse[models.BalanceResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.BalanceResponse]("Account not found"), err
		}
		logger.Error("account service get balance failed", err, logger.Fields{
			"accountId": id,
		})
		return commons.ErrorResponse[models.BalanceResponse]("failed to get balance", "Unable to fetch balance right now"), err
	}

	return commons.SuccessResponse("balance retrieved", models.BalanceResponse{Balance: account.Balance}), nil
}

func (s *AccountService) ListAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		logger.Error("account service list accounts failed", err, nil)
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to fetch accounts right now"), err
	}

	return commons.SuccessResponse("accounts retrieved", mapAccountsToResponses(accounts)), nil
}

func (s *AccountService) ListUserAccounts(ctx context.Context, userID string) (commons.Response[[]models.AccountResponse], error) {
	if strings.TrimSpace(userID) == "" {
		err := fmt.Errorf("userId is required")
		return commons.ErrorResponse[[]models.AccountResponse]("validation failed", err.Error()), err
	}

	accounts, err := s.accountRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.Error("account service list user accounts failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to fetch accounts right now"), err
	}

	return commons.SuccessResponse("accounts retrieved", mapAccountsToResponses(accounts)), nil
}

func (s *AccountService) DeactivateAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error) {
	if strings.TrimSpace(id) == "" {
		err := fmt.Errorf("id is required")
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	if err := s.accountRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		logger.Error("account service deactivate failed", err, logger.Fields{
			"accountId": id,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to deactivate account", "Unable to deactivate account right now"), err
	}

	return s.GetAccount(ctx, id)
}

func (s *AccountService) DeleteAccount(ctx context.Context, id string) (commons.Response[struct{}], error) {
	if strings.TrimSpace(id) == "" {
		err := fmt.Errorf("id is required")
		return commons.ErrorResponse[struct{}]("validation failed", err.Error()), err
	}

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("Account not found"), err
		}
		if errors.Is(err, domain.ErrAccountHasTransactions) {
			return commons.ErrorResponse[struct{}]("Account has ledger entries", err.Error()), err
		}
		logger.Error("account service delete failed", err, logger.Fields{
			"accountId": id,
		})
		return commons.ErrorResponse[struct{}]("failed to delete account", "Unable to delete account right now"), err
	}

	return commons.SuccessResponse("account deleted", struct{}{}), nil
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		AccountType:   string(account.AccountType),
		Balance:       account.Balance,
		UserID:        account.UserID,
		IsActive:      account.IsActive,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
}

func mapAccountsToResponses(accounts []domain.Account) []models.AccountResponse {
	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, mapAccountToResponse(account))
	}
	return responses
}
