package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. *App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	SetStatus(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
}

// runREPL reads one command per line and dispatches it. It returns on EOF
// or on "exit" / "quit". Dashboard and profile commands require a session.
//
// reader is shared with the command prompts, so it must not be wrapped in
// a buffering scanner. out is the same writer the commands print to.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	say := func(v ...any) { fmt.Fprintln(out, v...) }

	for {
		fmt.Fprintf(out, "taskhub %s > ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				say("Tasks:   (l)ist, search <text>, filter <pending|in-progress|done|all>, add, edit <id>, status <id> <status>, delete <id>, show <id>")
				say("Profile: profile, editprofile")
				say("Session: logout, exit")
			} else {
				say("Available commands: register, login, exit")
			}
			continue

		case "register":
			_ = a.Register(ctx)
			continue

		case "login":
			_ = a.Login(ctx)
			continue

		case "exit", "quit":
			say("Bye!")
			return
		}

		if !a.isLoggedIn() {
			if isKnown(cmd) {
				say("Please log in first (type 'login' or 'register').")
			} else {
				say("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "l", "list":
			_ = a.List(ctx)
		case "search":
			_ = a.Search(ctx, args)
		case "filter":
			_ = a.Filter(ctx, args)
		case "add":
			_ = a.Add(ctx)
		case "edit":
			_ = a.Edit(ctx, args)
		case "status":
			_ = a.SetStatus(ctx, args)
		case "delete", "rm":
			_ = a.Delete(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "profile":
			_ = a.Profile(ctx)
		case "editprofile":
			_ = a.EditProfile(ctx)
		case "logout":
			_ = a.Logout(ctx)
		default:
			say("Unknown command:", cmd)
		}
	}
}

var protectedCommands = map[string]struct{}{
	"l": {}, "list": {}, "search": {}, "filter": {}, "add": {}, "edit": {},
	"status": {}, "delete": {}, "rm": {}, "show": {}, "profile": {},
	"editprofile": {}, "logout": {},
}

func isKnown(cmd string) bool {
	_, ok := protectedCommands[cmd]
	return ok
}
