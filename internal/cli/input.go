package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readSecret is swapped out in tests so they never need a real terminal.
var readSecret = term.ReadPassword

// PromptLine writes label followed by "> " to w and returns the next line
// from r with surrounding whitespace trimmed. A line terminated by EOF
// instead of a newline still counts as input.
func PromptLine(r *bufio.Reader, label string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n> ", label); err != nil {
		return "", err
	}

	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptPassword reads a password from the terminal with echo off, writing
// the prompt and a closing newline to w. Callers own the returned bytes and
// should zero them after use.
func PromptPassword(w io.Writer) ([]byte, error) {
	if _, err := io.WriteString(w, "Enter password: "); err != nil {
		return nil, err
	}
	defer fmt.Fprintln(w)

	secret, err := readSecret(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}
	return secret, nil
}
