package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/logger"
)

type LedgerService interface {
	Submit(ctx context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error)
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactionResponse], error)
	GetTransaction(ctx context.Context, id string) (commons.Response[models.TransactionRecord], error)
	ListTransactions(ctx context.Context) (commons.Response[[]models.TransactionRecord], error)
	ListAccountTransactions(ctx context.Context, accountID string) (commons.Response[[]models.TransactionRecord], error)
}

type TransactionController struct {
	service LedgerService
}

func NewTransactionController(service LedgerService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, guards Guards) {
	mux.Handle("POST /transactions", chain(http.HandlerFunc(c.submit), guards.Auth))
	mux.Handle("POST /transactions/deposit", chain(http.HandlerFunc(c.deposit), guards.Auth))
	mux.Handle("POST /transactions/withdraw", chain(http.HandlerFunc(c.withdraw), guards.Auth))
	mux.Handle("POST /transactions/transfer", chain(http.HandlerFunc(c.transfer), guards.Auth))
	mux.Handle("GET /transactions", chain(http.HandlerFunc(c.list), guards.Auth, guards.Admin))
	mux.Handle("GET /transactions/{id}", chain(http.HandlerFunc(c.get), guards.Auth, guards.Owner(domain.ResourceTransaction)))
	mux.Handle("GET /accounts/{id}/transactions", chain(http.HandlerFunc(c.listByAccount), guards.Auth, guards.Owner(domain.ResourceAccount)))
}

func (c *TransactionController) submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Submit(r.Context(), req)
	c.respond(w, r, response, err, start)
}

func (c *TransactionController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Deposit(r.Context(), req)
	c.respond(w, r, response, err, start)
}

func (c *TransactionController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Withdraw(r.Context(), req)
	c.respond(w, r, response, err, start)
}

func (c *TransactionController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Transfer(r.Context(), req)
	c.respond(w, r, response, err, start)
}

func (c *TransactionController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetTransaction(r.Context(), r.PathValue("id"))
	writeResult(w, r, response, err, start)
}

func (c *TransactionController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListTransactions(r.Context())
	writeResult(w, r, response, err, start)
}

func (c *TransactionController) listByAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListAccountTransactions(r.Context(), r.PathValue("id"))
	writeResult(w, r, response, err, start)
}

func (c *TransactionController) respond(w http.ResponseWriter, r *http.Request, response commons.Response[models.TransactionResponse], err error, start time.Time) {
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}
