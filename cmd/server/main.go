package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/http/controller"
	"github.com/api-sage/bank-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/bank-ledger/internal/adapter/http/router"
	"github.com/api-sage/bank-ledger/internal/adapter/repository/postgres"
	"github.com/api-sage/bank-ledger/internal/config"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/usecase/services"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := postgres.Open(startupCtx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(startupCtx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	log.Println("migrations completed successfully")

	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)

	ledgerService := services.NewLedgerService(ledgerRepo)
	accessService := services.NewAccessService(userRepo, accountRepo, ledgerRepo)
	accountService := services.NewAccountService(accountRepo, userRepo)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	guards := controller.Guards{
		Auth:  middleware.Auth(authService),
		Admin: middleware.RequireAdmin(),
		Owner: func(kind domain.ResourceKind) controller.Middleware {
			return middleware.RequireOwnership(accessService, kind)
		},
	}

	mux := router.New(
		guards,
		controller.NewAuthController(authService),
		controller.NewUserController(userService),
		controller.NewAccountController(accountService),
		controller.NewTransactionController(ledgerService),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve: %v", err)
	}
}
