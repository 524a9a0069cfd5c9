package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ledgerkeeper/ledgerkeeper/internal/common"
)

// AddUser prompts for the fields of a new account and registers it. The
// server rejects the call unless the session belongs to an admin. An empty
// role defaults to "user".
func (a *App) AddUser(ctx context.Context) error {
	email, err := promptLine(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	role, err := promptLine(a.reader, "Enter role (user/admin, empty for user)", os.Stdout)
	if err != nil {
		return err
	}
	if role == "" {
		role = "user"
	}

	password, err := promptPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.Wipe(password)

	user, err := a.api.CreateUser(ctx, email, password, role)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Created %s (%s)\n", user.Email, user.Role)
	return nil
}
