package store

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/ticketdesk/internal/client/api"
	"github.com/dmitrijs2005/ticketdesk/internal/client/models"
	"github.com/dmitrijs2005/ticketdesk/internal/logging"
)

type commentAPI interface {
	ListComments(ctx context.Context, ticketID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, input api.CreateCommentInput) (*models.Comment, error)
}

// CommentsView is a read-only copy of the comment cache.
type CommentsView struct {
	Items   []models.Comment
	Loading bool
	Err     string
}

// Comments caches the comments of the ticket currently being viewed.
// Comments are append-only; there is no edit or delete.
type Comments struct {
	mu  sync.Mutex
	api commentAPI
	log logging.Logger

	status
	items []models.Comment
}

func NewComments(a commentAPI, log logging.Logger) *Comments {
	return &Comments{api: a, log: log}
}

// View returns a consistent copy of the cache state.
func (c *Comments) View() CommentsView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CommentsView{
		Items:   append([]models.Comment(nil), c.items...),
		Loading: c.loading,
		Err:     c.err,
	}
}

// FetchForTicket replaces the cache with one ticket's comments.
func (c *Comments) FetchForTicket(ctx context.Context, ticketID string) error {
	c.mu.Lock()
	c.begin()
	c.mu.Unlock()

	comments, err := c.api.ListComments(ctx, ticketID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.reject(err)
		return err
	}
	c.items = comments
	c.fulfill()
	return nil
}

// Create appends a comment; the server's representation, with id and
// timestamps, is what lands in the cache.
func (c *Comments) Create(ctx context.Context, input api.CreateCommentInput) (*models.Comment, error) {
	c.mu.Lock()
	c.begin()
	c.mu.Unlock()

	comment, err := c.api.CreateComment(ctx, input)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.reject(err)
		return nil, err
	}
	c.items = append(c.items, *comment)
	c.fulfill()
	return comment, nil
}

// Clear drops the cached comments, typically when leaving a ticket view.
func (c *Comments) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.err = ""
}
