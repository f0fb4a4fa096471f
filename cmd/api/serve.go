package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sangkips/ledgerbook/internal/application/service"
	"github.com/sangkips/ledgerbook/internal/config"
	"github.com/sangkips/ledgerbook/internal/domain/enum"
	"github.com/sangkips/ledgerbook/internal/domain/ledger"
	domainRepo "github.com/sangkips/ledgerbook/internal/domain/repository"
	"github.com/sangkips/ledgerbook/internal/infrastructure/database"
	"github.com/sangkips/ledgerbook/internal/infrastructure/remote"
	"github.com/sangkips/ledgerbook/internal/infrastructure/repository"
	"github.com/sangkips/ledgerbook/internal/presentation/http/handler"
	"github.com/sangkips/ledgerbook/internal/presentation/http/middleware"
	"github.com/sangkips/ledgerbook/internal/presentation/http/routes"
	"github.com/sangkips/ledgerbook/pkg/utils"
)

const (
	shutdownTimeout        = 10 * time.Second
	idempotencySweepPeriod = time.Hour
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.Load(envFile)

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db, log); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize repositories
	sessionRepo := repository.NewSessionRepository(db)
	preferencesRepo := repository.NewPreferencesRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Remote ledger API
	client := remote.NewClient(&cfg.Remote, sessionRepo, nil, log)
	authGateway := remote.NewAuthGateway(client)
	customerGateway := remote.NewCustomerGateway(client)
	transactionGateway := remote.NewTransactionGateway(client)

	// Initialize services
	defaultTheme := enum.Theme(cfg.Ledger.DefaultTheme)
	preferencesService := service.NewPreferencesService(preferencesRepo, defaultTheme, cfg.Ledger.DefaultTaxPercentage)
	prefs, err := preferencesService.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	sessionService := service.NewSessionService(authGateway, sessionRepo, utils.NewTokenInspector(), log)
	pendingStore := ledger.NewPendingStore(prefs.TaxPercentage, time.Now)
	ledgerService := service.NewLedgerService(pendingStore, transactionGateway, customerGateway, preferencesService, log)
	balanceService := service.NewBalanceService(customerGateway, log)
	customerService := service.NewCustomerService(customerGateway, transactionGateway)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(sessionService, ledgerService),
		Customer:    handler.NewCustomerHandler(customerService),
		Transaction: handler.NewTransactionHandler(ledgerService, balanceService),
		Pending:     handler.NewPendingHandler(ledgerService),
		Preferences: handler.NewPreferencesHandler(preferencesService),
	}

	limiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer limiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             log,
		Sessions:        sessionService,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     limiter,
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo, log)

	port := cfg.App.Port
	if port == "" {
		port = "8787"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("remote", cfg.Remote.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// sweepIdempotencyKeys drops expired keys until ctx ends
func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *zap.Logger) {
	ticker := time.NewTicker(idempotencySweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				log.Warn("failed to delete expired idempotency keys", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("deleted expired idempotency keys", zap.Int64("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}
