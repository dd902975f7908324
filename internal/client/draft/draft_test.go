package draft

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ticketdesk/internal/client/models"
)

func baseTicket() models.Ticket {
	return models.Ticket{
		ID:          "t1",
		Title:       "Fix login",
		Description: "Users cannot log in.",
		Priority:    models.PriorityLow,
		State:       models.StateOpen,
		AssignedTo:  nil,
	}
}

func TestDraft_StartsClean(t *testing.T) {
	d := New(baseTicket())
	require.False(t, d.Dirty())
	require.False(t, d.CanCommit(false))
}

func TestDraft_SameValueDifferentCaseStaysClean(t *testing.T) {
	d := New(baseTicket())

	d.SetPriority(models.TicketPriority("LOW"))
	require.False(t, d.Dirty())

	d.SetState(models.TicketState("Open"))
	require.False(t, d.Dirty())
}

func TestDraft_AssigneeSetComparison(t *testing.T) {
	d := New(baseTicket())

	d.SetAssignees([]string{"u1"})
	require.True(t, d.Dirty())

	d.SetAssignees([]string{})
	require.False(t, d.Dirty())
}

func TestDraft_AssigneeOrderIsIgnored(t *testing.T) {
	ticket := baseTicket()
	ticket.AssignedTo = []string{"u1", "u2"}
	d := New(ticket)

	d.SetAssignees([]string{"u2", "u1"})
	require.False(t, d.Dirty())

	d.SetAssignees([]string{"u2", "u1", "u3"})
	require.True(t, d.Dirty())
}

func TestDraft_DescriptionTrimmedComparison(t *testing.T) {
	d := New(baseTicket())

	d.SetDescription("Users cannot log in.  \n")
	require.False(t, d.Dirty())

	d.SetDescription("Users CANNOT log in.")
	require.True(t, d.Dirty())
}

func TestDraft_ResetDiscardsLocalEdits(t *testing.T) {
	d := New(baseTicket())
	d.SetPriority(models.PriorityCritical)
	require.True(t, d.Dirty())

	fresh := baseTicket()
	fresh.Priority = models.PriorityMedium
	d.Reset(fresh)

	require.False(t, d.Dirty())
	require.Equal(t, models.PriorityMedium, d.Priority())
}

func TestDraft_CommitGating(t *testing.T) {
	d := New(baseTicket())
	require.False(t, d.CanCommit(false), "clean draft must not commit")

	d.SetPriority(models.PriorityHigh)
	require.True(t, d.CanCommit(false))
	require.False(t, d.CanCommit(true), "pending operation blocks commit")
}

func TestDraft_PatchCarriesAllFourFields(t *testing.T) {
	d := New(baseTicket())
	d.SetAssignees([]string{"u1"})
	d.SetPriority(models.PriorityHigh)
	d.SetState(models.StatePending)
	d.SetDescription("updated")

	patch := d.Patch()
	require.NotNil(t, patch.AssignedTo)
	require.Equal(t, []string{"u1"}, *patch.AssignedTo)
	require.NotNil(t, patch.Priority)
	require.Equal(t, models.PriorityHigh, *patch.Priority)
	require.NotNil(t, patch.State)
	require.Equal(t, models.StatePending, *patch.State)
	require.NotNil(t, patch.Description)
	require.Equal(t, "updated", *patch.Description)
}

func TestDraft_ResolveAndCancelGating(t *testing.T) {
	// An open ticket can be cancelled but must pass through pending
	// before it can resolve.
	open := baseTicket()
	d := New(open)
	require.False(t, d.CanResolve())
	require.True(t, d.CanCancel())

	pending := baseTicket()
	pending.State = models.StatePending
	d.Reset(pending)
	require.True(t, d.CanResolve())

	// Local edits never gate the lifecycle actions.
	d.SetPriority(models.PriorityCritical)
	require.True(t, d.CanResolve())

	closed := baseTicket()
	closed.State = models.StateClosed
	d.Reset(closed)
	require.False(t, d.CanResolve())
	require.False(t, d.CanCancel())

	cancelled := baseTicket()
	cancelled.State = models.StateCancelled
	d.Reset(cancelled)
	require.False(t, d.CanResolve())
	require.False(t, d.CanCancel())

	// Already resolved: re-resolving would be a no-op, not an action.
	resolved := baseTicket()
	resolved.State = models.StateResolved
	d.Reset(resolved)
	require.False(t, d.CanResolve())
	require.True(t, d.CanCancel())
}
