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
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo domain.UserRepository
}

func NewUserService(userRepo domain.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (commons.Response[models.UserResponse], error) {
	logger.Info("user service create user request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("user service create user validation failed", err, nil)
		return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), err
	}

	passwordHash, err := hashPassword(strings.TrimSpace(req.Password))
	if err != nil {
		logger.Error("user service create user hash password failed", err, nil)
		return commons.ErrorResponse[models.UserResponse]("failed to create user", "failed to hash password"), err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         domain.RoleUser,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return commons.ErrorResponse[models.UserResponse]("Email already registered", err.Error()), err
		}
		logger.Error("user service create user repository failed", err, logger.Fields{
			"email": user.Email,
		})
		return commons.ErrorResponse[models.UserResponse]("failed to create user", "Unable to create user right now"), err
	}

	logger.Info("user service create user success", logger.Fields{
		"userId": created.ID,
		"email":  created.Email,
	})

	return commons.SuccessResponse("user created successfully", mapUserToResponse(created)), nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (commons.Response[models.UserResponse], error) {
	if strings.TrimSpace(id) == "" {
		err := fmt.Errorf("id is required")
		return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.UserResponse]("User not found"), err
		}
		logger.Error("user service get user failed", err, logger.Fields{
			"userId": id,
		})
		return commons.ErrorResponse[models.UserResponse]("failed to get user", "Unable to fetch user right now"), err
	}

	return commons.SuccessResponse("user retrieved", mapUserToResponse(user)), nil
}

func (s *UserService) ListUsers(ctx context.Context) (commons.Response[[]models.UserResponse], error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		logger.Error("user service list users failed", err, nil)
		return commons.ErrorResponse[[]models.UserResponse]("failed to list users", "Unable to fetch users right now"), err
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, mapUserToResponse(user))
	}

	return commons.SuccessResponse("users retrieved", responses), nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (commons.Response[models.UserResponse], error) {
	logger.Info("user service update user request", logger.Fields{
		"userId":  id,
		"payload": logger.SanitizePayload(req),
	})

	if strings.TrimSpace(id) == "" {
		err := fmt.Errorf("id is required")
		return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), err
	}
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.UserResponse]("User not found"), err
		}
		logger.Error("user service update user load failed", err, logger.Fields{
			"userId": id,
		})
		return commons.ErrorResponse[models.UserResponse]("failed to update user", "Unable to update user right now"), err
	}

	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" {
		user.Email = email
	}
	if firstName := strings.TrimSpace(req.FirstName); firstName != "" {
		user.FirstName = firstName
	}
	if lastName := strings.TrimSpace(req.LastName); lastName != "" {
		user.LastName = lastName
	}
	if password := strings.TrimSpace(req.Password); password != "" {
		passwordHash, err := hashPassword(password)
		if err != nil {
			logger.Error("user service update user hash password failed", err, nil)
			return commons.ErrorResponse[models.UserResponse]("failed to update user", "failed to hash password"), err
		}
		user.PasswordHash = passwordHash
	}

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return commons.ErrorResponse[models.UserResponse]("Email already registered", err.Error()), err
		}
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.UserResponse]("User not found"), err
		}
		logger.Error("user service update user repository failed", err, logger.Fields{
			"userId": id,
		})
		return commons.ErrorResponse[models.UserResponse]("failed to update user", "Unable to update user right now"), err
	}

	return commons.SuccessResponse("user updated successfully", mapUserToResponse(updated)), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) (commons.Response[struct{}], error) {
	if strings.TrimSpace(id) == "" {
		err := fmt.Errorf("id is required")
		return commons.ErrorResponse[struct{}]("validation failed", err.Error()), err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("User not found"), err
		}
		logger.Error("user service delete user failed", err, logger.Fields{
			"userId": id,
		})
		return commons.ErrorResponse[struct{}]("failed to delete user", "Unable to delete user right now"), err
	}

	return commons.SuccessResponse("user deleted", struct{}{}), nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func mapUserToResponse(user domain.User) models.UserResponse {
	return models.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
