package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/logger"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// LedgerService is the transaction engine: it validates a requested
// money movement, hands it to the ledger store as one atomic session,
// and retries bounded transient failures with fresh reads.
type LedgerService struct {
	ledgerRepo domain.LedgerRepository
}

func NewLedgerService(ledgerRepo domain.LedgerRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

const maxCommitAttempts = 3
const retryBaseDelay = 50 * time.Millisecond

func (s *LedgerService) Submit(ctx context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("ledger service submit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service submit validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	txn := domain.Transaction{
		ID:     uuid.NewString(),
		Type:   domain.TransactionType(strings.ToUpper(strings.TrimSpace(req.Type))),
		Amount: req.Amount,
		Status: domain.TransactionStatusCompleted,
	}
	if trimmed := strings.TrimSpace(req.Description); trimmed != "" {
		txn.Description = &trimmed
	}
	if trimmed := strings.TrimSpace(req.FromAccountID); trimmed != "" {
		txn.FromAccountID = &trimmed
	}
	if trimmed := strings.TrimSpace(req.ToAccountID); trimmed != "" {
		txn.ToAccountID = &trimmed
	}

	applied, err := s.applyWithRetry(ctx, txn)
	if err != nil {
		return s.mapApplyError(txn, err)
	}

	logger.Info("ledger service submit success", logger.Fields{
		"transactionId": applied.Transaction.ID,
		"type":          applied.Transaction.Type,
		"amount":        applied.Transaction.Amount.String(),
	})

	return commons.SuccessResponse("Transaction successful", mapAppliedToResponse(applied)), nil
}

func (s *LedgerService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error) {
	return s.Submit(ctx, models.CreateTransactionRequest{
		Type:        string(domain.TransactionTypeDeposit),
		Amount:      req.Amount,
		ToAccountID: req.AccountID,
		Description: defaultDescription(req.Description, "Deposit"),
	})
}

func (s *LedgerService) Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error) {
	return s.Submit(ctx, models.CreateTransactionRequest{
		Type:          string(domain.TransactionTypeWithdrawal),
		Amount:        req.Amount,
		FromAccountID: req.AccountID,
		Description:   defaultDescription(req.Description, "Withdrawal"),
	})
}

func (s *LedgerService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactionResponse], error) {
	return s.Submit(ctx, models.CreateTransactionRequest{
		Type:          string(domain.TransactionTypeTransfer),
		Amount:        req.Amount,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Description:   defaultDescription(req.Description, "Transfer"),
	})
}

func (s *LedgerService) GetTransaction(ctx context.Context, id string) (commons.Response[models.TransactionRecord], error) {
	if strings.TrimSpace(id) == "" {
		err := fmt.Errorf("id is required")
		return commons.ErrorResponse[models.TransactionRecord]("validation failed", err.Error()), err
	}

	txn, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionRecord]("Transaction not found"), err
		}
		logger.Error("ledger service get transaction failed", err, logger.Fields{
			"transactionId": id,
		})
		return commons.ErrorResponse[models.TransactionRecord]("failed to get transaction", "Unable to fetch transaction right now"), err
	}

	return commons.SuccessResponse("transaction retrieved", mapTransactionToRecord(txn)), nil
}

func (s *LedgerService) ListTransactions(ctx context.Context) (commons.Response[[]models.TransactionRecord], error) {
	transactions, err := s.ledgerRepo.List(ctx)
	if err != nil {
		logger.Error("ledger service list transactions failed", err, nil)
		return commons.ErrorResponse[[]models.TransactionRecord]("failed to list transactions", "Unable to fetch transactions right now"), err
	}

	return commons.SuccessResponse("transactions retrieved", mapTransactionsToRecords(transactions)), nil
}

func (s *LedgerService) ListAccountTransactions(ctx context.Context, accountID string) (commons.Response[[]models.TransactionRecord], error) {
	if strings.TrimSpace(accountID) == "" {
		err := fmt.Errorf("accountId is required")
		return commons.ErrorResponse[[]models.TransactionRecord]("validation failed", err.Error()), err
	}

	transactions, err := s.ledgerRepo.ListByAccountID(ctx, accountID)
	if err != nil {
		logger.Error("ledger service list account transactions failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[[]models.TransactionRecord]("failed to list transactions", "Unable to fetch transactions right now"), err
	}

	return commons.SuccessResponse("transactions retrieved", mapTransactionsToRecords(transactions)), nil
}

// applyWithRetry re-runs the whole session on serialization conflicts
// and lock timeouts. Each attempt re-reads the locked balances, so the
// decision logic never replays stale state.
func (s *LedgerService) applyWithRetry(ctx context.Context, txn domain.Transaction) (domain.AppliedTransaction, error) {
	var applied domain.AppliedTransaction
	var err error

	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		applied, err = s.ledgerRepo.Apply(ctx, txn)
		if err == nil || !isTransientStoreError(err) {
			return applied, err
		}

		logger.Info("ledger service transient store failure", logger.Fields{
			"transactionId": txn.ID,
			"attempt":       attempt,
		})

		if attempt == maxCommitAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return domain.AppliedTransaction{}, ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBaseDelay):
		}
	}

	return domain.AppliedTransaction{}, fmt.Errorf("%w: %v", domain.ErrTransientStore, err)
}

func (s *LedgerService) mapApplyError(txn domain.Transaction, err error) (commons.Response[models.TransactionResponse], error) {
	var notFound *domain.AccountNotFoundError
	switch {
	case errors.As(err, &notFound):
		message := "From account not found"
		if notFound.Side == domain.SideTo {
			message = "To account not found"
		}
		return commons.ErrorResponse[models.TransactionResponse](message, err.Error()), err
	case errors.Is(err, domain.ErrAccountInactive):
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	case errors.Is(err, domain.ErrInsufficientBalance):
		return commons.ErrorResponse[models.TransactionResponse]("Insufficient balance", err.Error()), err
	case errors.Is(err, domain.ErrTransientStore):
		logger.Error("ledger service commit retries exhausted", err, logger.Fields{
			"transactionId": txn.ID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transaction", "Unable to process transaction right now"), err
	default:
		logger.Error("ledger service apply failed", err, logger.Fields{
			"transactionId": txn.ID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transaction", "Unable to process transaction right now"), err
	}
}

func isTransientStoreError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case "40001", "40P01", "55P03":
			return true
		}
	}
	return false
}

func mapAppliedToResponse(applied domain.AppliedTransaction) models.TransactionResponse {
	response := models.TransactionResponse{
		ID:        applied.Transaction.ID,
		Type:      string(applied.Transaction.Type),
		Amount:    applied.Transaction.Amount,
		Status:    string(applied.Transaction.Status),
		CreatedAt: applied.Transaction.CreatedAt,
	}
	if applied.Transaction.Description != nil {
		response.Description = *applied.Transaction.Description
	}
	if applied.FromAccount != nil {
		response.FromAccount = mapAccountToSummary(applied.FromAccount)
	}
	if applied.ToAccount != nil {
		response.ToAccount = mapAccountToSummary(applied.ToAccount)
	}

	return response
}

func mapAccountToSummary(account *domain.Account) *models.AccountSummary {
	return &models.AccountSummary{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		AccountType:   string(account.AccountType),
		Balance:       account.Balance,
	}
}

func mapTransactionToRecord(txn domain.Transaction) models.TransactionRecord {
	record := models.TransactionRecord{
		ID:        txn.ID,
		Type:      string(txn.Type),
		Amount:    txn.Amount,
		Status:    string(txn.Status),
		CreatedAt: txn.CreatedAt,
	}
	if txn.Description != nil {
		record.Description = *txn.Description
	}
	if txn.FromAccountID != nil {
		record.FromAccountID = *txn.FromAccountID
	}
	if txn.ToAccountID != nil {
		record.ToAccountID = *txn.ToAccountID
	}

	return record
}

func mapTransactionsToRecords(transactions []domain.Transaction) []models.TransactionRecord {
	records := make([]models.TransactionRecord, 0, len(transactions))
	for _, txn := range transactions {
		records = append(records, mapTransactionToRecord(txn))
	}
	return records
}

func defaultDescription(description, fallback string) string {
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		return trimmed
	}
	return fallback
}
