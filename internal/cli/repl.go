package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// replPrintln is how the REPL talks to the user. Tests capture it.
var replPrintln = fmt.Println

// commandSet is the surface the REPL dispatches to. App implements it;
// REPL tests use a recording stub.
type commandSet interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	AddUser(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	AttachReceipt(ctx context.Context) error
	FetchReceipt(ctx context.Context) error
}

// runREPL reads lines from in, treating the first whitespace-separated
// token of each line as a command and dispatching it on actions. The loop
// ends at EOF or on "exit"/"quit"; unknown commands only print a notice.
//
// status supplies the session fragment shown in the prompt. Commands
// before login: help, login, exit|quit. After login: help, whoami, adduser,
// l|list, add, attach, fetch, logout, exit|quit.
//
// Handler errors are not surfaced here; each handler reports its own
// failures to the user, so one bad command never ends the session.
func runREPL(ctx context.Context, actions commandSet, status func() string, in *bufio.Scanner) {
	for {
		replPrintln(fmt.Sprintf("lk> %s > ", status()))
		if !in.Scan() {
			return
		}

		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}

		switch cmd := fields[0]; cmd {
		case "help":
			if actions.isLoggedIn() {
				replPrintln("Available commands: whoami, adduser, (l)ist, add, attach, fetch, logout, exit")
			} else {
				replPrintln("Available commands: login, exit")
			}

		case "login":
			_ = actions.Login(ctx)

		case "whoami":
			_ = actions.Whoami(ctx)

		case "adduser":
			_ = actions.AddUser(ctx)

		case "l", "list":
			_ = actions.List(ctx)

		case "add":
			_ = actions.Add(ctx)

		case "attach":
			_ = actions.AttachReceipt(ctx)

		case "fetch":
			_ = actions.FetchReceipt(ctx)

		case "logout":
			_ = actions.Logout(ctx)

		case "exit", "quit":
			replPrintln("Bye!")
			return

		default:
			replPrintln("Unknown command:", cmd)
		}
	}
}
