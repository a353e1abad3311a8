package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// navIface defines the minimal surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type navIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Open(ctx context.Context, path string) error
	Logout(ctx context.Context) error
	Notice() string
}

// commandRoutes maps REPL commands to router paths. The guard on the
// target route decides what actually renders, so the table can list every
// command regardless of who is logged in.
var commandRoutes = map[string]string{
	"login":       "/login",
	"register":    "/register",
	"adminlogin":  "/admin/login",
	"d":           "/dashboard",
	"dashboard":   "/dashboard",
	"s":           "/slots",
	"slots":       "/slots",
	"b":           "/bookings",
	"bookings":    "/bookings",
	"w":           "/waitlist",
	"waitlist":    "/waitlist",
	"profile":     "/profile",
	"admin":       "/admin/dashboard",
	"adminslots":  "/admin/slots",
	"users":       "/admin/users",
	"allbookings": "/admin/bookings",
}

// runREPL starts a simple read-eval-print loop for the kpark CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and resolves it to a guarded route on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the user
// types "exit" or "quit".
func runREPL(ctx context.Context, a navIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if n := a.Notice(); n != "" {
			printlnFn(n)
		}
		printlnFn(fmt.Sprintf("kpark %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printHelp(a)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			path, ok := commandRoutes[cmd]
			if !ok {
				printlnFn("Unknown command:", cmd)
				continue
			}
			if err := a.Open(ctx, path); err != nil {
				printlnFn("error:", err.Error())
			}
		}
	}
}

func printHelp(a navIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: login, register, adminlogin, exit")
		return
	}
	if a.isAdmin() {
		printlnFn("Available commands: admin, adminslots, users, allbookings, (d)ashboard, (s)lots, (b)ookings, (w)aitlist, profile, logout, exit")
		return
	}
	printlnFn("Available commands: (d)ashboard, (s)lots, (b)ookings, (w)aitlist, profile, logout, exit")
}
