package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ledgerkeeper/ledgerkeeper/internal/cli/client"
	"github.com/ledgerkeeper/ledgerkeeper/internal/cli/config"
)

// apiClient is the API surface the command handlers need. *client.Client
// satisfies it; tests substitute a fake.
type apiClient interface {
	Token() string
	Logout()
	Login(ctx context.Context, email string, password []byte) error
	Whoami(ctx context.Context) (*client.User, error)
	CreateUser(ctx context.Context, email string, password []byte, role string) (*client.User, error)
	ListTransactions(ctx context.Context, filter *client.ListFilter) ([]client.Transaction, error)
	CreateTransaction(ctx context.Context, amount float64, description, date string) (*client.Transaction, error)
	RequestReceiptUpload(ctx context.Context, transactionID string) (*client.ReceiptUpload, error)
	CompleteReceiptUpload(ctx context.Context, transactionID string) error
	GetReceiptDownload(ctx context.Context, transactionID string) (*client.ReceiptDownload, error)
}

type App struct {
	config *config.Config
	api    apiClient
	user   *client.User
	reader *bufio.Reader
}

func NewApp(c *config.Config) *App {
	api := client.New(c.ServerAddress, c.RequestTimeout)
	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin)}
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

// getStatus renders the prompt fragment describing the current session,
// e.g. "(alice@example.com user)". Empty when not logged in.
func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", a.user.Email, a.user.Role)
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	log.Println("Welcome to LedgerKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
