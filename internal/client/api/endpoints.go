package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/ticketdesk/internal/client/models"
)

// Credentials is the login request body. Username accepts either the
// username or the email, matching the server contract.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupInput is the account-creation request body.
type SignupInput struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthUser is the identity fragment returned by /login and /refresh.
type AuthUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Label picks the display identity, preferring the email.
func (u AuthUser) Label() string {
	if u.Email != "" {
		return u.Email
	}
	return u.Username
}

// AuthPayload carries a freshly minted access token plus the identity it
// belongs to.
type AuthPayload struct {
	AccessToken string   `json:"access_token"`
	User        AuthUser `json:"user"`
}

// CreateTicketInput is the ticket-creation request body.
type CreateTicketInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TicketPatch is a partial update: nil fields are omitted from the request
// so the server only touches what was sent.
type TicketPatch struct {
	AssignedTo  *[]string              `json:"assigned_to,omitempty"`
	Priority    *models.TicketPriority `json:"priority,omitempty"`
	State       *models.TicketState    `json:"state,omitempty"`
	Description *string                `json:"description,omitempty"`
}

// CreateCommentInput is the comment-creation request body.
type CreateCommentInput struct {
	TicketID    string `json:"ticket_id"`
	Description string `json:"description"`
}

// API is the full endpoint surface consumed by the session store and the
// entity caches. Satisfied by *RESTClient; tests substitute fakes.
type API interface {
	Login(ctx context.Context, creds Credentials) (*AuthPayload, error)
	Signup(ctx context.Context, input SignupInput) error
	Refresh(ctx context.Context) (*AuthPayload, error)
	Logout(ctx context.Context) error

	ListTickets(ctx context.Context) ([]models.Ticket, error)
	ListAssignedTickets(ctx context.Context) ([]models.Ticket, error)
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	CreateTicket(ctx context.Context, input CreateTicketInput) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, id string, patch TicketPatch) (*models.Ticket, error)

	ListComments(ctx context.Context, ticketID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, input CreateCommentInput) (*models.Comment, error)

	ListUsers(ctx context.Context) ([]models.User, error)
}

var _ API = (*RESTClient)(nil)

// Login authenticates with a password and returns the minted token. The
// refresh cookie arrives via Set-Cookie and lands in the client's jar.
func (c *RESTClient) Login(ctx context.Context, creds Credentials) (*AuthPayload, error) {
	resp, err := c.Request(ctx, http.MethodPost, "/login", creds)
	if err != nil {
		return nil, err
	}
	return decodeAuthPayload(resp)
}

// Signup creates a new account. The server returns no body of interest.
func (c *RESTClient) Signup(ctx context.Context, input SignupInput) error {
	_, err := c.Request(ctx, http.MethodPost, "/user", input)
	return err
}

// Refresh mints a new access token from the refresh cookie. It bypasses the
// 401-retry path: it is what that path calls.
func (c *RESTClient) Refresh(ctx context.Context) (*AuthPayload, error) {
	resp, err := c.request(ctx, http.MethodGet, "/refresh", nil, false)
	if err != nil {
		return nil, err
	}
	return decodeAuthPayload(resp)
}

// Logout invalidates the server-side refresh cookie. No retry: a dead token
// must not block logging out.
func (c *RESTClient) Logout(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodGet, "/logout", nil, false)
	return err
}

func decodeAuthPayload(resp *Response) (*AuthPayload, error) {
	var payload AuthPayload
	if err := decodeInto(resp, &payload); err != nil {
		return nil, err
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing access_token", ErrMalformedPayload)
	}
	return &payload, nil
}

// ListTickets returns every ticket visible to the caller.
func (c *RESTClient) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	resp, err := c.Request(ctx, http.MethodGet, "/ticket/all", nil)
	if err != nil {
		return nil, err
	}
	var tickets []models.Ticket
	if err := decodeInto(resp, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// ListAssignedTickets returns tickets assigned to the caller.
func (c *RESTClient) ListAssignedTickets(ctx context.Context) ([]models.Ticket, error) {
	resp, err := c.Request(ctx, http.MethodGet, "/ticket/assigned", nil)
	if err != nil {
		return nil, err
	}
	var tickets []models.Ticket
	if err := decodeInto(resp, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// GetTicket fetches a single ticket with resolved creator info.
func (c *RESTClient) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	resp, err := c.Request(ctx, http.MethodGet, "/ticket/"+id, nil)
	if err != nil {
		return nil, err
	}
	var ticket models.Ticket
	if err := decodeInto(resp, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CreateTicket posts a new ticket and returns the server's representation,
// including the assigned id and timestamps.
func (c *RESTClient) CreateTicket(ctx context.Context, input CreateTicketInput) (*models.Ticket, error) {
	resp, err := c.Request(ctx, http.MethodPost, "/ticket", input)
	if err != nil {
		return nil, err
	}
	var ticket models.Ticket
	if err := decodeInto(resp, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateTicket sends a partial patch and returns the authoritative result.
func (c *RESTClient) UpdateTicket(ctx context.Context, id string, patch TicketPatch) (*models.Ticket, error) {
	resp, err := c.Request(ctx, http.MethodPatch, "/ticket/"+id, patch)
	if err != nil {
		return nil, err
	}
	var ticket models.Ticket
	if err := decodeInto(resp, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListComments returns the comments of one ticket.
func (c *RESTClient) ListComments(ctx context.Context, ticketID string) ([]models.Comment, error) {
	resp, err := c.Request(ctx, http.MethodGet, "/ticket/"+ticketID+"/comments", nil)
	if err != nil {
		return nil, err
	}
	var comments []models.Comment
	if err := decodeInto(resp, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment appends a comment to a ticket.
func (c *RESTClient) CreateComment(ctx context.Context, input CreateCommentInput) (*models.Comment, error) {
	resp, err := c.Request(ctx, http.MethodPost, "/comment", input)
	if err != nil {
		return nil, err
	}
	var comment models.Comment
	if err := decodeInto(resp, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListUsers fetches the user directory.
func (c *RESTClient) ListUsers(ctx context.Context) ([]models.User, error) {
	resp, err := c.Request(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := decodeInto(resp, &users); err != nil {
		return nil, err
	}
	return users, nil
}
