package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	report(ctx context.Context, err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context, kind string) error
	Create(ctx context.Context, kind string) error
	Update(ctx context.Context, kind, id string) error
	Delete(ctx context.Context, kind, id string) error
	Bill(ctx context.Context, saleID, pdfPath string) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The first token is the command, the rest are its arguments. The loop ends
// on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  help, register, login, whoami, exit
//
//	Logged in:
//	  help, whoami, logout, exit
//	  list <kind>, create <kind>, update <kind> <id>, delete <kind> <id>
//	  bill <sale_id> [file.pdf]
//
// Handler errors are passed to a.report and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "posadmin %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printHelp(w, a.isLoggedIn())

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "l", "list":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: list <kind>")
				continue
			}
			cmdErr = a.List(ctx, args[0])

		case "create":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: create <kind>")
				continue
			}
			cmdErr = a.Create(ctx, args[0])

		case "update":
			if len(args) != 2 {
				fmt.Fprintln(w, "Usage: update <kind> <id>")
				continue
			}
			cmdErr = a.Update(ctx, args[0], args[1])

		case "delete":
			if len(args) != 2 {
				fmt.Fprintln(w, "Usage: delete <kind> <id>")
				continue
			}
			cmdErr = a.Delete(ctx, args[0], args[1])

		case "bill":
			if len(args) < 1 || len(args) > 2 {
				fmt.Fprintln(w, "Usage: bill <sale_id> [file.pdf]")
				continue
			}
			pdf := ""
			if len(args) == 2 {
				pdf = args[1]
			}
			cmdErr = a.Bill(ctx, args[0], pdf)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			a.report(ctx, cmdErr)
		}
		if err != nil {
			return
		}
	}
}

func printHelp(w io.Writer, loggedIn bool) {
	if !loggedIn {
		fmt.Fprintln(w, "Available commands: register, login, whoami, exit")
		return
	}
	fmt.Fprintln(w, "Available commands: (l)ist <kind>, create <kind>, update <kind> <id>, delete <kind> <id>, bill <sale_id> [file.pdf], whoami, logout, exit")
	fmt.Fprintln(w, "Kinds:", strings.Join(kindNames(), ", "))
}
