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

type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (commons.Response[models.UserResponse], error)
	GetUser(ctx context.Context, id string) (commons.Response[models.UserResponse], error)
	ListUsers(ctx context.Context) (commons.Response[[]models.UserResponse], error)
	UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (commons.Response[models.UserResponse], error)
	DeleteUser(ctx context.Context, id string) (commons.Response[struct{}], error)
}

type UserController struct {
	service UserService
}

func NewUserController(service UserService) *UserController {
	return &UserController{service: service}
}

func (c *UserController) RegisterRoutes(mux *http.ServeMux, guards Guards) {
	mux.Handle("POST /users", http.HandlerFunc(c.create))
	mux.Handle("GET /users", chain(http.HandlerFunc(c.list), guards.Auth, guards.Admin))
	mux.Handle("GET /users/{id}", chain(http.HandlerFunc(c.get), guards.Auth, guards.Owner(domain.ResourceUser)))
	mux.Handle("PATCH /users/{id}", chain(http.HandlerFunc(c.update), guards.Auth, guards.Owner(domain.ResourceUser)))
	mux.Handle("DELETE /users/{id}", chain(http.HandlerFunc(c.remove), guards.Auth, guards.Admin))
}

func (c *UserController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.UserResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateUser(r.Context(), req)
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

func (c *UserController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetUser(r.Context(), r.PathValue("id"))
	writeResult(w, r, response, err, start)
}

func (c *UserController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListUsers(r.Context())
	writeResult(w, r, response, err, start)
}

func (c *UserController) update(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.UserResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.UpdateUser(r.Context(), r.PathValue("id"), req)
	writeResult(w, r, response, err, start)
}

func (c *UserController) remove(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.DeleteUser(r.Context(), r.PathValue("id"))
	writeResult(w, r, response, err, start)
}
