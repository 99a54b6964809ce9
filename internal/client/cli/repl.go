package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Catalog(ctx context.Context) error
	Click(ctx context.Context, control string) error
	Add(ctx context.Context, n int) error
	Wish(ctx context.Context, n int) error
	Cart(ctx context.Context) error
	Qty(ctx context.Context, line, qty int) error
	Remove(ctx context.Context, line int) error
	ClearCart(ctx context.Context) error
	Wishlist(ctx context.Context) error
	Unwish(ctx context.Context, id string) error
	Checkout(ctx context.Context) error
	Orders(ctx context.Context) error
	Reset(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: signup, login, catalog, click <control>, whoami, reset, exit"
	helpLoggedIn  = "Available commands: catalog, add <n>, wish <n>, click <control>, cart, qty <line> <n>, " +
		"remove <line>, clear, wishlist, unwish <id>, checkout, orders, whoami, logout, reset, exit"
)

// runREPL starts a simple read–eval–print loop for the footcap CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands and malformed arguments are
// reported back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                show available commands
//	  - catalog             list products with their controls
//	  - click <control>     press a control by id, e.g. click add-running-sneaker-shoes
//	  - whoami              show the navigation bar
//	  - reset               delete all locally stored footcap data
//	  - exit | quit         leave the program
//
//	Not logged in:
//	  - signup | login      open the auth dialog
//
//	Logged in:
//	  - add <n> | wish <n>  add product n to the cart / toggle it on the wishlist
//	  - cart                open the cart
//	  - qty <line> <n>      set the quantity of a cart line (0 removes)
//	  - remove <line>       remove a cart line
//	  - clear               empty the cart
//	  - wishlist            open the wishlist
//	  - unwish <id>         remove a wishlist entry
//	  - checkout            place an order for the cart
//	  - orders              list past orders
//	  - logout              log out
//
// Errors returned by command handlers are printed; shop-level failures have
// already been shown as notifications, so handlers only return I/O errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("footcap%s> ", prefixSpace(statusFn())))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
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
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "signup":
			cmdErr = a.SignUp(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "catalog", "ls":
			cmdErr = a.Catalog(ctx)

		case "click":
			if len(args) != 1 {
				printlnFn("Usage: click <control>")
				continue
			}
			cmdErr = a.Click(ctx, args[0])

		case "add", "wish", "remove":
			n, ok := intArgs(cmd+" <n>", args, 1)
			if !ok {
				continue
			}
			switch cmd {
			case "add":
				cmdErr = a.Add(ctx, n[0])
			case "wish":
				cmdErr = a.Wish(ctx, n[0])
			case "remove":
				cmdErr = a.Remove(ctx, n[0])
			}

		case "qty":
			n, ok := intArgs("qty <line> <n>", args, 2)
			if !ok {
				continue
			}
			cmdErr = a.Qty(ctx, n[0], n[1])

		case "cart":
			cmdErr = a.Cart(ctx)
		case "clear":
			cmdErr = a.ClearCart(ctx)
		case "wishlist":
			cmdErr = a.Wishlist(ctx)

		case "unwish":
			if len(args) != 1 {
				printlnFn("Usage: unwish <id>")
				continue
			}
			cmdErr = a.Unwish(ctx, args[0])

		case "checkout":
			cmdErr = a.Checkout(ctx)
		case "orders":
			cmdErr = a.Orders(ctx)

		case "reset":
			cmdErr = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			if errors.Is(cmdErr, io.EOF) {
				return
			}
			printlnFn("Error:", cmdErr)
		}
	}
}

func intArgs(usage string, args []string, want int) ([]int, bool) {
	if len(args) != want {
		printlnFn("Usage: " + usage)
		return nil, false
	}
	out := make([]int, want)
	for i, s := range args {
		v, err := strconv.Atoi(s)
		if err != nil {
			printlnFn("Usage: " + usage)
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
