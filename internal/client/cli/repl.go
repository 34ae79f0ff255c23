package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	Register(ctx context.Context, opts RegisterOptions) error
	Login(ctx context.Context, username string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Ping(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context, title, description string, priority int) error
	Done(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

const replHelp = "Available commands: register, login, logout, whoami, ping, (l)ist, add, done <id>, delete <id>, exit"

// runREPL reads one command per line and dispatches it to a. Command errors
// are printed and the loop continues. It returns on EOF, "exit" or "quit",
// or when ctx is done.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(w, "todokeeper> ")
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
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
			fmt.Fprintln(w, replHelp)
		case "register":
			cmdErr = a.Register(ctx, RegisterOptions{})
		case "login":
			username := ""
			if len(args) > 0 {
				username = args[0]
			}
			cmdErr = a.Login(ctx, username)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "ping":
			cmdErr = a.Ping(ctx)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "add":
			cmdErr = a.Add(ctx, strings.Join(args, " "), "", 1)
		case "done", "delete":
			if len(args) != 1 {
				fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				cmdErr = err
				break
			}
			if cmd == "done" {
				cmdErr = a.Done(ctx, id)
			} else {
				cmdErr = a.Delete(ctx, id)
			}
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}
