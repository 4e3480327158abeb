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

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error)
	GetBalance(ctx context.Context, id string) (commons.Response[models.BalanceResponse], error)
	ListAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error)
	ListUserAccounts(ctx context.Context, userID string) (commons.Response[[]models.AccountResponse], error)
	DeactivateAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error)
	DeleteAccount(ctx context.Context, id string) (commons.Response[struct{}], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, guards Guards) {
	mux.Handle("POST /accounts", chain(http.HandlerFunc(c.create), guards.Auth))
	mux.Handle("GET /accounts", chain(http.HandlerFunc(c.list), guards.Auth, guards.Admin))
	mux.Handle("GET /accounts/{id}", chain(http.HandlerFunc(c.get), guards.Auth, guards.Owner(domain.ResourceAccount)))
	mux.Handle("GET /accounts/{id}/balance", chain(http.HandlerFunc(c.balance), guards.Auth, guards.Owner(domain.ResourceAccount)))
	mux.Handle("GET /users/{id}/accounts", chain(http.HandlerFunc(c.listByUser), guards.Auth, guards.Owner(domain.ResourceUser)))
	mux.Handle("POST /accounts/{id}/deactivate", chain(http.HandlerFunc(c.deactivate), guards.Auth, guards.Admin))
	mux.Handle("DELETE /accounts/{id}", chain(http.HandlerFunc(c.remove), guards.Auth, guards.Admin))
}

func (c *AccountController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateAccount(r.Context(), req)
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

func (c *AccountController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetAccount(r.Context(), r.PathValue("id"))
	writeResult(w, r, response, err, start)
}

func (c *AccountController) balance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetBalance(r.Context(), r.PathValue("id"))
	writeResult(w, r, response, err, start)
}

func (c *AccountController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListAccounts(r.Context())
	writeResult(w, r, response, err, start)
}

func (c *AccountController) listByUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListUserAccounts(r.Context(), r.PathValue("id"))
	writeResult(w, r, response, err, start)
}

func (c *AccountController) deactivate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.DeactivateAccount(r.Context(), r.PathValue("id"))
	writeResult(w, r, response, err, start)
}

func (c *AccountController) remove(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.DeleteAccount(r.Context(), r.PathValue("id"))
	writeResult(w, r, response, err, start)
}

// writeResult is the shared happy-path/error-path writer for handlers
// that return a ready response envelope.
func writeResult[T any](w http.ResponseWriter, r *http.Request, response commons.Response[T], err error, start time.Time) {
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
