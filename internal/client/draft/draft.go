// Package draft derives an editable view of a ticket's mutable fields from
// the authoritative cached entity and tracks whether the local edits diverge
// from it. A draft is ephemeral, single-owner state; it is not safe for
// concurrent use and never shares memory with the cache.
package draft

import (
	"strings"

	"github.com/dmitrijs2005/ticketdesk/internal/client/api"
	"github.com/dmitrijs2005/ticketdesk/internal/client/models"
)

// TicketDraft holds local edits to the four mutable ticket fields next to a
// snapshot of the last-synced entity. The dirty flag is recomputed on every
// edit by comparing normalized field values.
type TicketDraft struct {
	synced models.Ticket

	assignees   []string
	priority    models.TicketPriority
	state       models.TicketState
	description string

	dirty bool
}

// New builds a draft mirroring the given authoritative ticket.
func New(t models.Ticket) *TicketDraft {
	d := &TicketDraft{}
	d.Reset(t)
	return d
}

// Reset unconditionally overwrites the draft from the authoritative entity
// and clears the dirty flag. Called whenever a fetch or a successful update
// delivers a fresh ticket; in-flight local edits are discarded by contract.
func (d *TicketDraft) Reset(t models.Ticket) {
	d.synced = t
	d.assignees = append([]string(nil), t.AssignedTo...)
	d.priority = t.Priority
	d.state = t.State
	d.description = t.Description
	d.dirty = false
}

// SetAssignees replaces the draft assignee list.
func (d *TicketDraft) SetAssignees(ids []string) {
	d.assignees = append([]string(nil), ids...)
	d.recompute()
}

// SetPriority replaces the draft priority.
func (d *TicketDraft) SetPriority(p models.TicketPriority) {
	d.priority = p
	d.recompute()
}

// SetState replaces the draft lifecycle state.
func (d *TicketDraft) SetState(s models.TicketState) {
	d.state = s
	d.recompute()
}

// SetDescription replaces the draft description.
func (d *TicketDraft) SetDescription(text string) {
	d.description = text
	d.recompute()
}

func (d *TicketDraft) recompute() {
	d.dirty = !strings.EqualFold(string(d.priority), string(d.synced.Priority)) ||
		!strings.EqualFold(string(d.state), string(d.synced.State)) ||
		strings.TrimSpace(d.description) != strings.TrimSpace(d.synced.Description) ||
		!sameIDSet(d.assignees, d.synced.AssignedTo)
}

// sameIDSet compares two assignee lists as sets: order-insensitive, blank
// entries ignored.
func sameIDSet(a, b []string) bool {
	return idSet(a).equal(idSet(b))
}

type stringSet map[string]struct{}

func idSet(ids []string) stringSet {
	set := make(stringSet, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

func (s stringSet) equal(other stringSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

// Dirty reports whether the draft diverges from the last-synced entity.
func (d *TicketDraft) Dirty() bool {
	return d.dirty
}

// CanCommit reports whether a combined patch is warranted: there must be
// local edits and no operation already in flight.
func (d *TicketDraft) CanCommit(pending bool) bool {
	return d.dirty && !pending
}

// Patch emits all four mutable fields as one combined partial update.
// Callers re-fetch the canonical ticket after a successful commit instead of
// trusting the patch echo.
func (d *TicketDraft) Patch() api.TicketPatch {
	assignees := append([]string(nil), d.assignees...)
	priority := d.priority
	state := d.state
	description := d.description
	return api.TicketPatch{
		AssignedTo:  &assignees,
		Priority:    &priority,
		State:       &state,
		Description: &description,
	}
}

// CanResolve reports whether the authoritative ticket may move to resolved.
// Gated purely by the lifecycle position, never by the dirty flag; the
// no-op case of an already resolved ticket does not count.
func (d *TicketDraft) CanResolve() bool {
	return d.synced.State != models.StateResolved &&
		d.synced.State.CanTransitionTo(models.StateResolved)
}

// CanCancel reports whether the authoritative ticket may be cancelled.
func (d *TicketDraft) CanCancel() bool {
	return d.synced.State != models.StateCancelled &&
		d.synced.State.CanTransitionTo(models.StateCancelled)
}

// Synced returns the last authoritative ticket the draft was reset from.
func (d *TicketDraft) Synced() models.Ticket {
	return d.synced
}

// Assignees returns the draft assignee list.
func (d *TicketDraft) Assignees() []string {
	return append([]string(nil), d.assignees...)
}

// Priority returns the draft priority.
func (d *TicketDraft) Priority() models.TicketPriority {
	return d.priority
}

// State returns the draft lifecycle state.
func (d *TicketDraft) State() models.TicketState {
	return d.state
}

// Description returns the draft description.
func (d *TicketDraft) Description() string {
	return d.description
}
