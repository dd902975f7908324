// Package models defines the wire-level entities of the ticket service:
// tickets, comments and directory users, plus the ticket lifecycle rules.
package models

import (
	"strings"
	"time"
)

// TicketPriority classifies SLA urgency.
type TicketPriority string

const (
	PriorityLow      TicketPriority = "low"
	PriorityMedium   TicketPriority = "medium"
	PriorityHigh     TicketPriority = "high"
	PriorityCritical TicketPriority = "critical"
)

// TicketState is a lifecycle state. Transitions move one step at a time
// along open -> pending -> resolved -> closed; cancelled is reachable from
// any non-terminal state. closed and cancelled are terminal.
type TicketState string

const (
	StateOpen      TicketState = "open"
	StatePending   TicketState = "pending"
	StateResolved  TicketState = "resolved"
	StateClosed    TicketState = "closed"
	StateCancelled TicketState = "cancelled"
)

// lifecycle order used for the monotonicity check. Terminal states have no
// position here because nothing is reachable from them.
var stateOrder = map[TicketState]int{
	StateOpen:     0,
	StatePending:  1,
	StateResolved: 2,
	StateClosed:   3,
}

// ParsePriority normalizes a priority string. Unknown values are returned
// as-is so the server stays authoritative over the vocabulary.
func ParsePriority(s string) TicketPriority {
	return TicketPriority(strings.ToLower(strings.TrimSpace(s)))
}

// ParseState normalizes a state string.
func ParseState(s string) TicketState {
	return TicketState(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether p is one of the known priorities.
func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Valid reports whether s is one of the known lifecycle states.
func (s TicketState) Valid() bool {
	if s == StateCancelled {
		return true
	}
	_, ok := stateOrder[s]
	return ok
}

// Terminal reports whether no further transitions are allowed from s.
func (s TicketState) Terminal() bool {
	return s == StateClosed || s == StateCancelled
}

// CanTransitionTo reports whether moving from s to next respects the
// lifecycle: exactly one step forward along the order, or to cancelled from
// any non-terminal state. Skipping states is rejected; open tickets go
// through pending before they can resolve. Staying in place is always
// allowed, the server treats it as a no-op.
func (s TicketState) CanTransitionTo(next TicketState) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	if next == StateCancelled {
		return true
	}
	from, ok := stateOrder[s]
	if !ok {
		return false
	}
	to, ok := stateOrder[next]
	if !ok {
		return false
	}
	return to == from+1
}

// Ticket is a support request as returned by the server. CreatedBy carries
// the creator's user id; AssignedTo lists assignee user ids resolved against
// the user directory by callers.
type Ticket struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CreatedBy   string         `json:"created_by"`
	AssignedTo  []string       `json:"assigned_to"`
	Priority    TicketPriority `json:"priority"`
	State       TicketState    `json:"state"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at"`
}
