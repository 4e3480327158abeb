package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/repository/postgres"
	"github.com/api-sage/bank-ledger/internal/config"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	email     string
	password  string
	firstName string
	lastName  string
	role      domain.Role
	accounts  []seedAccount
}

type seedAccount struct {
	number      string
	accountType domain.AccountType
	balance     string
}

var seedUsers = []seedUser{
	{
		email:     "admin@bank.com",
		password:  "admin123",
		firstName: "System",
		lastName:  "Administrator",
		role:      domain.RoleAdmin,
	},
	{
		email:     "john.doe@example.com",
		password:  "password123",
		firstName: "John",
		lastName:  "Doe",
		role:      domain.RoleUser,
		accounts: []seedAccount{
			{number: "1000000001", accountType: domain.AccountTypeChecking, balance: "5000.00"},
			{number: "1000000002", accountType: domain.AccountTypeSavings, balance: "12000.00"},
		},
	},
	{
		email:     "jane.smith@example.com",
		password:  "password123",
		firstName: "Jane",
		lastName:  "Smith",
		role:      domain.RoleUser,
		accounts: []seedAccount{
			{number: "1000000003", accountType: domain.AccountTypeChecking, balance: "3200.50"},
		},
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)

	for _, seed := range seedUsers {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password for %s: %v", seed.email, err)
		}

		user, err := userRepo.Create(ctx, domain.User{
			ID:           uuid.NewString(),
			Email:        seed.email,
			PasswordHash: string(passwordHash),
			FirstName:    seed.firstName,
			LastName:     seed.lastName,
			Role:         seed.role,
		})
		if err != nil {
			if errors.Is(err, domain.ErrEmailTaken) {
				log.Printf("user %s already seeded, skipping", seed.email)
				continue
			}
			log.Fatalf("create user %s: %v", seed.email, err)
		}
		log.Printf("seeded user %s (%s)", user.Email, user.Role)

		for _, account := range seed.accounts {
			balance, err := decimal.NewFromString(account.balance)
			if err != nil {
				log.Fatalf("parse balance for account %s: %v", account.number, err)
			}

			created, err := accountRepo.Create(ctx, domain.Account{
				ID:            uuid.NewString(),
				AccountNumber: account.number,
				AccountType:   account.accountType,
				Balance:       balance,
				UserID:        user.ID,
				IsActive:      true,
			})
			if err != nil {
				log.Fatalf("create account %s: %v", account.number, err)
			}
			log.Printf("seeded account %s (%s %s)", created.AccountNumber, created.Balance.StringFixed(2), created.AccountType)
		}
	}

	log.Println("seeding completed")
}
