package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ticketdesk/internal/client/api"
	"github.com/dmitrijs2005/ticketdesk/internal/client/models"
	"github.com/dmitrijs2005/ticketdesk/internal/logging"
)

type fakeCommentAPI struct {
	listResp []models.Comment
	listErr  error

	createResp *models.Comment
	createErr  error
	lastInput  api.CreateCommentInput
}

func (f *fakeCommentAPI) ListComments(ctx context.Context, ticketID string) ([]models.Comment, error) {
	return f.listResp, f.listErr
}

func (f *fakeCommentAPI) CreateComment(ctx context.Context, input api.CreateCommentInput) (*models.Comment, error) {
	f.lastInput = input
	return f.createResp, f.createErr
}

func TestFetchForTicket_ReplacesItems(t *testing.T) {
	f := &fakeCommentAPI{listResp: []models.Comment{{ID: "c1", TicketID: "t1", Description: "hi"}}}
	cs := NewComments(f, logging.NewNop())

	require.NoError(t, cs.FetchForTicket(context.Background(), "t1"))
	require.Len(t, cs.View().Items, 1)

	f.listResp = []models.Comment{{ID: "c2", TicketID: "t2"}}
	require.NoError(t, cs.FetchForTicket(context.Background(), "t2"))

	view := cs.View()
	require.Len(t, view.Items, 1)
	require.Equal(t, "c2", view.Items[0].ID)
}

func TestCreateComment_Appends(t *testing.T) {
	created := models.Comment{ID: "c9", TicketID: "t1", Description: "done"}
	f := &fakeCommentAPI{createResp: &created}
	cs := NewComments(f, logging.NewNop())

	comment, err := cs.Create(context.Background(), api.CreateCommentInput{TicketID: "t1", Description: "done"})
	require.NoError(t, err)
	require.Equal(t, "c9", comment.ID)
	require.Equal(t, "t1", f.lastInput.TicketID)
	require.Len(t, cs.View().Items, 1)
}

func TestCreateComment_FailureRecordsError(t *testing.T) {
	f := &fakeCommentAPI{createErr: &api.Error{Message: "ticket not found", Status: 404}}
	cs := NewComments(f, logging.NewNop())

	_, err := cs.Create(context.Background(), api.CreateCommentInput{TicketID: "missing"})
	require.Error(t, err)

	view := cs.View()
	require.Empty(t, view.Items)
	require.Equal(t, "ticket not found", view.Err)
	require.False(t, view.Loading)
}

func TestClearComments(t *testing.T) {
	f := &fakeCommentAPI{listResp: []models.Comment{{ID: "c1"}}}
	cs := NewComments(f, logging.NewNop())
	require.NoError(t, cs.FetchForTicket(context.Background(), "t1"))

	cs.Clear()
	require.Empty(t, cs.View().Items)
}
