package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

// printlnFn and printFn are test seams for REPL output. In tests, replace
// them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Confirm(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Filter(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Rows(ctx context.Context, args []string) error
	Page(ctx context.Context, args []string) error
	Select(ctx context.Context, args []string, included bool) error
	SelectAll(ctx context.Context) error
	SelectNone(ctx context.Context) error
	SetStatus(ctx context.Context, status models.Status) error
	Delete(ctx context.Context) error
	DeleteUnverified(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, confirm <token>, exit"
	helpLoggedIn  = "Available commands: (l)ist, show, filter [text], sort [asc|desc], rows <n>, page <n>|next|prev, select <id|#row>..., unselect <id|#row>..., selectall, selectnone, block, unblock, delete, delete-unverified, whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the admin CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help              — show available commands
//	  - register          — create an account
//	  - login             — authenticate
//	  - confirm <token>   — confirm an e-mail address
//	  - exit | quit       — leave the program
//
//	Logged in:
//	  - (l)ist            — refetch users and show the current page
//	  - show              — show the current page without refetching
//	  - filter [text]     — filter by name, e-mail or status; no text clears
//	  - sort [asc|desc]   — sort by last seen; no argument toggles
//	  - rows <n>          — set rows per page (back to page 1)
//	  - page <n>|next|prev
//	  - select / unselect <id|#row>...
//	  - selectall / selectnone — for the rows on the current page
//	  - block, unblock, delete — act on the selection
//	  - delete-unverified — remove every unverified account
//	  - whoami            — describe the current session
//	  - logout
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("useradmin %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "register":
			_ = a.Register(ctx)
			continue

		case "login":
			_ = a.Login(ctx)
			continue

		case "confirm":
			_ = a.Confirm(ctx, args)
			continue
		}

		if !a.isLoggedIn() {
			if isSessionCommand(cmd) {
				printlnFn("Please log in to access this page")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "l", "list":
			_ = a.List(ctx)
		case "show":
			_ = a.Show(ctx)
		case "filter":
			_ = a.Filter(ctx, args)
		case "sort":
			_ = a.Sort(ctx, args)
		case "rows":
			_ = a.Rows(ctx, args)
		case "page":
			_ = a.Page(ctx, args)
		case "select":
			_ = a.Select(ctx, args, true)
		case "unselect":
			_ = a.Select(ctx, args, false)
		case "selectall":
			_ = a.SelectAll(ctx)
		case "selectnone":
			_ = a.SelectNone(ctx)
		case "block":
			_ = a.SetStatus(ctx, models.StatusBlocked)
		case "unblock":
			_ = a.SetStatus(ctx, models.StatusActive)
		case "delete":
			_ = a.Delete(ctx)
		case "delete-unverified":
			_ = a.DeleteUnverified(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "logout":
			_ = a.Logout(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func isSessionCommand(cmd string) bool {
	switch cmd {
	case "l", "list", "show", "filter", "sort", "rows", "page", "select", "unselect",
		"selectall", "selectnone", "block", "unblock", "delete", "delete-unverified",
		"whoami", "logout":
		return true
	}
	return false
}
