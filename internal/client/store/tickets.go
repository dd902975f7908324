package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/ticketdesk/internal/client/api"
	"github.com/dmitrijs2005/ticketdesk/internal/client/models"
	"github.com/dmitrijs2005/ticketdesk/internal/logging"
)

// ticketAPI is the slice of the gateway the ticket cache needs.
type ticketAPI interface {
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	ListAssignedTickets(ctx context.Context) ([]models.Ticket, error)
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	CreateTicket(ctx context.Context, input api.CreateTicketInput) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, id string, patch api.TicketPatch) (*models.Ticket, error)
}

// SnapshotRepository persists the last fully fetched ticket listing so the
// client can still show something when the server is unreachable.
type SnapshotRepository interface {
	ReplaceAll(ctx context.Context, tickets []models.Ticket) error
	GetAll(ctx context.Context) ([]models.Ticket, error)
}

// TicketsView is a read-only copy of the cache: the bulk listing plus the
// currently focused ticket.
type TicketsView struct {
	Items   []models.Ticket
	Focus   *models.Ticket
	Loading bool
	Err     string
}

// Tickets is the ticket cache. The list and the focus are separate
// projections updated by matching id; the server representation always
// supersedes the local copy, there is no client-side field merge.
type Tickets struct {
	mu        sync.Mutex
	api       ticketAPI
	snapshots SnapshotRepository
	log       logging.Logger

	status
	items []models.Ticket
	focus *models.Ticket
}

// NewTickets builds the cache. snapshots may be nil to disable offline
// persistence.
func NewTickets(a ticketAPI, snapshots SnapshotRepository, log logging.Logger) *Tickets {
	return &Tickets{api: a, snapshots: snapshots, log: log}
}

// View returns a consistent copy of the cache state.
func (t *Tickets) View() TicketsView {
	t.mu.Lock()
	defer t.mu.Unlock()
	view := TicketsView{
		Items:   append([]models.Ticket(nil), t.items...),
		Loading: t.loading,
		Err:     t.err,
	}
	if t.focus != nil {
		f := *t.focus
		view.Focus = &f
	}
	return view
}

// FetchAll replaces the listing with the server's full result. The previous
// list survives a failure untouched.
func (t *Tickets) FetchAll(ctx context.Context) error {
	t.mu.Lock()
	t.begin()
	t.mu.Unlock()

	tickets, err := t.api.ListTickets(ctx)

	t.mu.Lock()
	if err != nil {
		t.reject(err)
		t.mu.Unlock()
		return err
	}
	t.items = tickets
	t.fulfill()
	t.mu.Unlock()

	t.persistSnapshot(ctx, tickets)
	return nil
}

// FetchAssigned replaces the listing with the tickets assigned to the
// caller. The partial listing is not written to the offline snapshot.
func (t *Tickets) FetchAssigned(ctx context.Context) error {
	t.mu.Lock()
	t.begin()
	t.mu.Unlock()

	tickets, err := t.api.ListAssignedTickets(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.reject(err)
		return err
	}
	t.items = tickets
	t.fulfill()
	return nil
}

// FetchOne replaces the focus with the fetched ticket, leaving the listing
// untouched.
func (t *Tickets) FetchOne(ctx context.Context, id string) error {
	t.mu.Lock()
	t.begin()
	t.mu.Unlock()

	ticket, err := t.api.GetTicket(ctx, id)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.reject(err)
		return err
	}
	t.focus = ticket
	t.fulfill()
	return nil
}

// Create posts a new ticket and appends the server's representation, with
// its assigned id and timestamps, to the listing.
func (t *Tickets) Create(ctx context.Context, input api.CreateTicketInput) (*models.Ticket, error) {
	t.mu.Lock()
	t.begin()
	t.mu.Unlock()

	ticket, err := t.api.CreateTicket(ctx, input)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.reject(err)
		return nil, err
	}
	t.items = append(t.items, *ticket)
	t.fulfill()
	return ticket, nil
}

// Update sends a partial patch. On success the server's returned
// representation replaces both the matching listing element and the focus
// when it carries the same id.
func (t *Tickets) Update(ctx context.Context, id string, patch api.TicketPatch) (*models.Ticket, error) {
	t.mu.Lock()
	t.begin()
	t.mu.Unlock()

	ticket, err := t.api.UpdateTicket(ctx, id, patch)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.reject(err)
		return nil, err
	}
	t.apply(ticket)
	t.fulfill()
	return ticket, nil
}

// Transition is the restricted single-field form of Update used for
// resolve/cancel. The lifecycle guard runs before any network call and a
// rejected transition leaves the cache untouched.
func (t *Tickets) Transition(ctx context.Context, id string, next models.TicketState) (*models.Ticket, error) {
	current, ok := t.lookup(id)
	if !ok {
		return nil, fmt.Errorf("ticket %s is not cached", id)
	}
	if !current.State.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot move ticket from %s to %s", current.State, next)
	}
	return t.Update(ctx, id, api.TicketPatch{State: &next})
}

// LoadSnapshot fills the listing from the local snapshot store. Meant for
// the offline path when the server cannot be reached.
func (t *Tickets) LoadSnapshot(ctx context.Context) error {
	if t.snapshots == nil {
		return fmt.Errorf("no snapshot store configured")
	}

	t.mu.Lock()
	t.begin()
	t.mu.Unlock()

	tickets, err := t.snapshots.GetAll(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.reject(err)
		return err
	}
	t.items = tickets
	t.fulfill()
	return nil
}

// lookup finds a ticket's current cached representation, preferring the
// focus over the listing.
func (t *Tickets) lookup(id string) (models.Ticket, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.focus != nil && t.focus.ID == id {
		return *t.focus, true
	}
	for _, ticket := range t.items {
		if ticket.ID == id {
			return ticket, true
		}
	}
	return models.Ticket{}, false
}

// apply replaces every cached projection carrying the ticket's id. Caller
// holds the lock.
func (t *Tickets) apply(ticket *models.Ticket) {
	for i := range t.items {
		if t.items[i].ID == ticket.ID {
			t.items[i] = *ticket
			break
		}
	}
	if t.focus != nil && t.focus.ID == ticket.ID {
		f := *ticket
		t.focus = &f
	}
}

// persistSnapshot writes the listing through to the offline store,
// best-effort.
func (t *Tickets) persistSnapshot(ctx context.Context, tickets []models.Ticket) {
	if t.snapshots == nil {
		return
	}
	if err := t.snapshots.ReplaceAll(ctx, tickets); err != nil {
		t.log.Warn(ctx, "failed to persist ticket snapshot", "error", err)
	}
}
