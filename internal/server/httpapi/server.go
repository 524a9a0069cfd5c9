// Package httpapi exposes the LedgerKeeper server over HTTP/JSON: login and
// token issuance, user management, transaction CRUD with owner scoping, and
// presigned receipt upload/download.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ledgerkeeper/ledgerkeeper/internal/logging"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/auth"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/services"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

type Server struct {
	address      string
	logger       logging.Logger
	tokens       *auth.TokenService
	users        *services.UserService
	transactions *services.TransactionService
	receipts     *services.ReceiptService
}

func NewServer(a string, l logging.Logger, tokens *auth.TokenService, us *services.UserService, ts *services.TransactionService, rs *services.ReceiptService) (*Server, error) {
	return &Server{
		address:      a,
		logger:       l.With("module", "http_server"),
		tokens:       tokens,
		users:        us,
		transactions: ts,
		receipts:     rs,
	}, nil
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.buildRouter()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
