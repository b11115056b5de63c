package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Filter(ctx context.Context, difficulty string) error
	ClearFilters(ctx context.Context) error
	Show(ctx context.Context, ref string) error
	Save(ctx context.Context, ref string) error
	Unsave(ctx context.Context, ref string) error
	Saved(ctx context.Context) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
}

const (
	helpGuest = "Available commands: (l)ist, search <term>, filter <All|Easy|Medium|Hard>, clear, show <n|id>, register, login, exit"
	helpUser  = "Available commands: (l)ist, search <term>, filter <All|Easy|Medium|Hard>, clear, show <n|id>, " +
		"save <n|id>, unsave <n|id>, saved, create, edit <n|id>, delete <n|id>, whoami, logout, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit" and
// dispatches them to a. Handlers report their own failures, so returned
// errors are dropped here.
//
// Recipe arguments accept either the number shown by the last list or a
// recipe id.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("cs %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, arg)

		case "filter":
			_ = a.Filter(ctx, arg)

		case "clear":
			_ = a.ClearFilters(ctx)

		case "show":
			_ = a.Show(ctx, arg)

		case "save":
			_ = a.Save(ctx, arg)

		case "unsave":
			_ = a.Unsave(ctx, arg)

		case "saved":
			_ = a.Saved(ctx)

		case "create":
			_ = a.Create(ctx)

		case "edit":
			_ = a.Edit(ctx, arg)

		case "delete":
			_ = a.Delete(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
