// Package cli provides the interactive LedgerKeeper command-line client.
//
// It wires configuration, the HTTP API client, and an interactive REPL.
// Typical flow: log in with an email and password, then run commands against
// the server.
//
// Key features:
//   - Login / Logout
//   - Whoami and admin-gated user creation
//   - List and record transactions
//   - Attach and fetch receipt files via presigned storage URLs
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
