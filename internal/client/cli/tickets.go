package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/ticketdesk/internal/client/api"
	"github.com/dmitrijs2005/ticketdesk/internal/client/draft"
	"github.com/dmitrijs2005/ticketdesk/internal/client/models"
)

func (a *App) listTickets(ctx context.Context) {
	if err := a.tickets.FetchAll(ctx); err != nil {
		fmt.Println("Failed to fetch tickets:", err)
		if api.Classify(err) == api.KindNetwork {
			fmt.Println("Server unreachable; try 'offline' for the last synced listing.")
		}
		return
	}
	a.markSynced(ctx)
	a.printTicketList()
}

func (a *App) listAssigned(ctx context.Context) {
	if err := a.tickets.FetchAssigned(ctx); err != nil {
		fmt.Println("Failed to fetch assigned tickets:", err)
		return
	}
	a.printTicketList()
}

func (a *App) listOffline(ctx context.Context) {
	if err := a.tickets.LoadSnapshot(ctx); err != nil {
		fmt.Println("No offline snapshot available:", err)
		return
	}
	fmt.Println("(offline snapshot)")
	a.printTicketList()
}

func (a *App) printTicketList() {
	view := a.tickets.View()
	if len(view.Items) == 0 {
		fmt.Println("No tickets")
		return
	}
	for _, t := range view.Items {
		fmt.Printf("%-12s  %-9s  %-9s  %s\n", t.ID, t.State, t.Priority, t.Title)
	}
}

func (a *App) showTicket(ctx context.Context, id string) {
	if err := a.tickets.FetchOne(ctx, id); err != nil {
		fmt.Println("Failed to fetch ticket:", err)
		return
	}
	// Refresh the directory so assignee ids resolve to names. Best-effort:
	// a stale directory only degrades the labels.
	if err := a.users.FetchAll(ctx); err != nil {
		a.log.Warn(ctx, "failed to refresh user directory", "error", err)
	}

	view := a.tickets.View()
	if view.Focus != nil {
		a.printTicket(*view.Focus)
	}
}

func (a *App) printTicket(t models.Ticket) {
	fmt.Println("Ticket:  ", t.ID)
	fmt.Println("Title:   ", t.Title)
	fmt.Println("State:   ", t.State)
	fmt.Println("Priority:", t.Priority)
	fmt.Println("Creator: ", a.users.Label(t.CreatedBy))
	if len(t.AssignedTo) > 0 {
		fmt.Println("Assigned:", strings.Join(a.users.Labels(t.AssignedTo), ", "))
	} else {
		fmt.Println("Assigned: -")
	}
	fmt.Println("Created: ", t.CreatedAt.Local().Format("2006-01-02 15:04"))
	if t.UpdatedAt != nil {
		fmt.Println("Updated: ", t.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println(t.Description)
}

func (a *App) newTicket(ctx context.Context) {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return
	}
	if title == "" {
		fmt.Println("Title must not be empty")
		return
	}
	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return
	}

	ticket, err := a.tickets.Create(ctx, api.CreateTicketInput{Title: title, Description: description})
	if err != nil {
		fmt.Println("Failed to create ticket:", err)
		return
	}
	fmt.Println("Created ticket", ticket.ID)
}

// editTicket walks the draft flow: fetch the authoritative ticket, collect
// edits to the four mutable fields, and commit one combined patch only when
// the draft is dirty. The canonical ticket is re-fetched afterwards.
func (a *App) editTicket(ctx context.Context, id string) {
	if err := a.tickets.FetchOne(ctx, id); err != nil {
		fmt.Println("Failed to fetch ticket:", err)
		return
	}
	view := a.tickets.View()
	if view.Focus == nil {
		return
	}
	d := draft.New(*view.Focus)

	fmt.Println("Press Enter to keep the current value.")

	assignees, err := getSimpleText(a.reader,
		fmt.Sprintf("Assignee ids, comma-separated [%s]", strings.Join(d.Assignees(), ",")), os.Stdout)
	if err != nil {
		return
	}
	if assignees != "" {
		d.SetAssignees(splitIDs(assignees))
	}

	priority, err := getSimpleText(a.reader,
		fmt.Sprintf("Priority (low/medium/high/critical) [%s]", d.Priority()), os.Stdout)
	if err != nil {
		return
	}
	if priority != "" {
		p := models.ParsePriority(priority)
		if !p.Valid() {
			fmt.Println("Unknown priority:", priority)
			return
		}
		d.SetPriority(p)
	}

	state, err := getSimpleText(a.reader,
		fmt.Sprintf("State (open/pending/resolved/closed/cancelled) [%s]", d.State()), os.Stdout)
	if err != nil {
		return
	}
	if state != "" {
		s := models.ParseState(state)
		if !s.Valid() {
			fmt.Println("Unknown state:", state)
			return
		}
		d.SetState(s)
	}

	description, err := GetMultiline(a.reader, "Description (empty keeps current)", os.Stdout)
	if err != nil {
		return
	}
	if description != "" {
		d.SetDescription(description)
	}

	if !d.CanCommit(a.tickets.View().Loading) {
		fmt.Println("No changes to commit")
		return
	}

	if _, err := a.tickets.Update(ctx, id, d.Patch()); err != nil {
		fmt.Println("Update failed:", err)
		return
	}

	// The server's echo is not trusted to be complete; re-fetch the
	// canonical ticket and rebase the draft on it.
	if err := a.tickets.FetchOne(ctx, id); err != nil {
		fmt.Println("Updated, but re-fetch failed:", err)
		return
	}
	if focus := a.tickets.View().Focus; focus != nil {
		d.Reset(*focus)
		fmt.Println("Updated.")
		a.printTicket(*focus)
	}
}

// transitionTicket drives resolve/cancel. These are gated by the ticket's
// lifecycle position alone, never by pending edits.
func (a *App) transitionTicket(ctx context.Context, id string, next string) {
	if err := a.tickets.FetchOne(ctx, id); err != nil {
		fmt.Println("Failed to fetch ticket:", err)
		return
	}

	state := models.ParseState(next)
	if _, err := a.tickets.Transition(ctx, id, state); err != nil {
		fmt.Println("Transition rejected:", err)
		return
	}

	if err := a.tickets.FetchOne(ctx, id); err != nil {
		fmt.Println("Transition applied, but re-fetch failed:", err)
		return
	}
	if focus := a.tickets.View().Focus; focus != nil {
		fmt.Printf("Ticket %s is now %s\n", focus.ID, focus.State)
	}
}

func (a *App) listUsers(ctx context.Context) {
	if err := a.users.FetchAll(ctx); err != nil {
		fmt.Println("Failed to fetch users:", err)
		return
	}
	for _, u := range a.users.View().Items {
		fmt.Printf("%-12s  %-16s  %s\n", u.ID, u.Username, u.Label())
	}
}

func splitIDs(s string) []string {
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
