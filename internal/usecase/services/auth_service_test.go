package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func authUserRepo(t *testing.T, password string) (*mockUserRepository, domain.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := domain.User{
		ID:           "user-1",
		Email:        "john.doe@bank.com",
		PasswordHash: string(hash),
		FirstName:    "John",
		LastName:     "Doe",
		Role:         domain.RoleUser,
	}
	repo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
			if email == user.Email {
				return user, nil
			}
			return domain.User{}, domain.ErrRecordNotFound
		},
		getByIDFn: func(ctx context.Context, id string) (domain.User, error) {
			if id == user.ID {
				return user, nil
			}
			return domain.User{}, domain.ErrRecordNotFound
		},
	}
	return repo, user
}

func TestAuthServiceLoginAndAuthenticateRoundTrip(t *testing.T) {
	userRepo, user := authUserRepo(t, "password123")
	service := services.NewAuthService(userRepo, testSecret, time.Hour)

	response, err := service.Login(context.Background(), models.LoginRequest{
		Email:    "John.Doe@Bank.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.True(t, response.Success)
	require.NotEmpty(t, response.Data.Token)
	assert.Equal(t, user.Email, response.Data.User.Email)

	principal, err := service.Authenticate(context.Background(), response.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
	assert.Equal(t, domain.RoleUser, principal.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	userRepo, _ := authUserRepo(t, "password123")
	service := services.NewAuthService(userRepo, testSecret, time.Hour)

	response, err := service.Login(context.Background(), models.LoginRequest{
		Email:    "john.doe@bank.com",
		Password: "wrong-password",
	})

	require.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Equal(t, "Invalid credentials", response.Message)
}

func TestAuthServiceLoginUnknownEmailLooksTheSame(t *testing.T) {
	userRepo, _ := authUserRepo(t, "password123")
	service := services.NewAuthService(userRepo, testSecret, time.Hour)

	response, err := service.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@bank.com",
		Password: "password123",
	})

	require.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Equal(t, "Invalid credentials", response.Message)
}

func TestAuthServiceAuthenticateRejectsTamperedToken(t *testing.T) {
	userRepo, _ := authUserRepo(t, "password123")
	service := services.NewAuthService(userRepo, testSecret, time.Hour)
	other := services.NewAuthService(userRepo, "another-secret", time.Hour)

	response, err := other.Login(context.Background(), models.LoginRequest{
		Email:    "john.doe@bank.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Authenticate(context.Background(), response.Data.Token)
	require.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestAuthServiceAuthenticateRejectsExpiredToken(t *testing.T) {
	userRepo, _ := authUserRepo(t, "password123")
	issuer := services.NewAuthService(userRepo, testSecret, -time.Minute)
	service := services.NewAuthService(userRepo, testSecret, time.Hour)

	response, err := issuer.Login(context.Background(), models.LoginRequest{
		Email:    "john.doe@bank.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Authenticate(context.Background(), response.Data.Token)
	require.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestAuthServiceAuthenticateReloadsRole(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	role := domain.RoleUser
	userRepo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
			return domain.User{ID: "user-1", Email: email, PasswordHash: string(hash), Role: role}, nil
		},
		getByIDFn: func(ctx context.Context, id string) (domain.User, error) {
			return domain.User{ID: id, Role: role}, nil
		},
	}
	service := services.NewAuthService(userRepo, testSecret, time.Hour)

	response, err := service.Login(context.Background(), models.LoginRequest{
		Email:    "john.doe@bank.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// Promotion after issuance is visible on the next request.
	role = domain.RoleAdmin

	principal, err := service.Authenticate(context.Background(), response.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, principal.Role)
}

func TestAuthServiceAuthenticateDeletedUser(t *testing.T) {
	userRepo, user := authUserRepo(t, "password123")
	service := services.NewAuthService(userRepo, testSecret, time.Hour)

	response, err := service.Login(context.Background(), models.LoginRequest{
		Email:    user.Email,
		Password: "password123",
	})
	require.NoError(t, err)

	userRepo.getByIDFn = func(ctx context.Context, id string) (domain.User, error) {
		return domain.User{}, domain.ErrRecordNotFound
	}

	_, err = service.Authenticate(context.Background(), response.Data.Token)
	require.ErrorIs(t, err, services.ErrInvalidToken)
}
