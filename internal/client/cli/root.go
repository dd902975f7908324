package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := a.session.Identity()
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the interactive command loop until EOF or "exit".
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to TicketDesk CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("td %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: tickets, assigned, offline, show <id>, new, edit <id>, resolve <id>, cancel <id>, comments <id>, comment <id>, users, whoami, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, offline, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.Whoami()

		case "tickets", "list":
			a.listTickets(ctx)
		case "assigned":
			a.listAssigned(ctx)
		case "offline":
			a.listOffline(ctx)
		case "show":
			if len(args) == 0 {
				fmt.Println("Usage: show <id>")
				continue
			}
			a.showTicket(ctx, args[0])
		case "new":
			a.newTicket(ctx)
		case "edit":
			if len(args) == 0 {
				fmt.Println("Usage: edit <id>")
				continue
			}
			a.editTicket(ctx, args[0])
		case "resolve":
			if len(args) == 0 {
				fmt.Println("Usage: resolve <id>")
				continue
			}
			a.transitionTicket(ctx, args[0], "resolved")
		case "cancel":
			if len(args) == 0 {
				fmt.Println("Usage: cancel <id>")
				continue
			}
			a.transitionTicket(ctx, args[0], "cancelled")

		case "comments":
			if len(args) == 0 {
				fmt.Println("Usage: comments <id>")
				continue
			}
			a.listComments(ctx, args[0])
		case "comment":
			if len(args) == 0 {
				fmt.Println("Usage: comment <id>")
				continue
			}
			a.addComment(ctx, args[0])

		case "users":
			a.listUsers(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
