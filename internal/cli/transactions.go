package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
)

// List prints the caller's transactions, newest first. Admins see every
// account's records.
func (a *App) List(ctx context.Context) error {
	list, err := a.api.ListTransactions(ctx, nil)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	for _, tr := range list {
		fmt.Printf("%s  %s  %10.2f  %s\n", tr.ID, tr.Date, tr.Amount, tr.Description)
	}
	return nil
}

// Add records a new transaction from interactive input.
func (a *App) Add(ctx context.Context) error {
	rawAmount, err := promptLine(a.reader, "Enter amount", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		log.Printf("error: amount must be a number")
		return err
	}

	description, err := promptLine(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	date, err := promptLine(a.reader, "Enter date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	tr, err := a.api.CreateTransaction(ctx, amount, description, date)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Recorded %s\n", tr.ID)
	return nil
}
