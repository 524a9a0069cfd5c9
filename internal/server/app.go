// Package server initializes and runs the LedgerKeeper server application.
// It wires configuration, logging, the database, the service layer, and the
// HTTP API together, and shuts everything down on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ledgerkeeper/ledgerkeeper/internal/logging"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/auth"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/config"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/httpapi"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/repositories/repomanager"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/services"
)

type App struct {
	config             *config.Config
	logger             logging.Logger
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	tokens             *auth.TokenService
	userService        *services.UserService
	transactionService *services.TransactionService
	receiptService     *services.ReceiptService
}

func NewApp(c *config.Config) (*App, error) {

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logging.ParseLevel(c.LogLevel)})
	logger := logging.NewSlogLogger(slog.New(handler))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	hasher := auth.NewPasswordHasher(auth.DefaultHashCost, logger)
	tokens := auth.NewTokenService([]byte(c.SecretKey), c.AccessTokenValidityDuration)

	us, err := services.NewUserService(db, m, hasher, tokens, c)
	if err != nil {
		return nil, fmt.Errorf("user service init error: %w", err)
	}
	ts := services.NewTransactionService(db, m)
	rs := services.NewReceiptService(db, m, c)

	return &App{
		config:             c,
		logger:             logger,
		db:                 db,
		repomanager:        m,
		tokens:             tokens,
		userService:        us,
		transactionService: ts,
		receiptService:     rs,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewServer(app.config.Address, app.logger, app.tokens,
		app.userService, app.transactionService, app.receiptService)

	if err != nil {
		app.logger.Error(ctx, "HTTP server init failed", "error", err)
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, "HTTP server failed", "error", err)
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err)
		cancelFunc()
		return
	}

	if app.config.AdminEmail == "" || app.config.AdminPassword == "" {
		app.logger.Warn(ctx, "admin bootstrap skipped, ADMIN_EMAIL/ADMIN_PASSWORD not set")
	} else if err := app.userService.EnsureBootstrapAdmin(ctx); err != nil {
		app.logger.Error(ctx, "admin bootstrap failed", "error", err)
		cancelFunc()
		return
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
}
