package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ledgerkeeper/ledgerkeeper/internal/cli/client"
	"github.com/ledgerkeeper/ledgerkeeper/internal/common"
)

// Tests swap these for stubs; the real helpers read the terminal.
var promptLine = PromptLine
var promptPassword = PromptPassword

// Login prompts the user for credentials and authenticates against the
// server. On success the session token is held by the API client and the
// account is cached for the prompt. The password byte slice is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := promptLine(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := promptPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.Wipe(password)

	if err := a.api.Login(ctx, email, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			log.Printf("Server unavailable: %s", err.Error())
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	user, err := a.api.Whoami(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.user = user

	log.Printf("Login successful")
	return nil
}

// Logout forgets the session token and the cached account.
func (a *App) Logout(_ context.Context) error {
	a.api.Logout()
	a.user = nil
	log.Printf("Logged out")
	return nil
}

// Whoami fetches and prints the account behind the current session.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.api.Whoami(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.user = user

	fmt.Printf("%s %s (%s)\n", user.ID, user.Email, user.Role)
	return nil
}
