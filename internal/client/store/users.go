package store

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/ticketdesk/internal/client/models"
	"github.com/dmitrijs2005/ticketdesk/internal/logging"
)

type userAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// UsersView is a read-only copy of the user directory cache.
type UsersView struct {
	Items   []models.User
	Loading bool
	Err     string
}

// Users caches the read-only user directory and resolves user-id references
// from tickets and comments to display labels.
type Users struct {
	mu  sync.Mutex
	api userAPI
	log logging.Logger

	status
	items []models.User
	byID  map[string]models.User
}

func NewUsers(a userAPI, log logging.Logger) *Users {
	return &Users{api: a, log: log}
}

// View returns a consistent copy of the cache state.
func (u *Users) View() UsersView {
	u.mu.Lock()
	defer u.mu.Unlock()
	return UsersView{
		Items:   append([]models.User(nil), u.items...),
		Loading: u.loading,
		Err:     u.err,
	}
}

// FetchAll replaces the directory with the server's listing.
func (u *Users) FetchAll(ctx context.Context) error {
	u.mu.Lock()
	u.begin()
	u.mu.Unlock()

	users, err := u.api.ListUsers(ctx)

	u.mu.Lock()
	defer u.mu.Unlock()
	if err != nil {
		u.reject(err)
		return err
	}
	u.items = users
	u.byID = make(map[string]models.User, len(users))
	for _, user := range users {
		u.byID[user.ID] = user
	}
	u.fulfill()
	return nil
}

// Resolve looks a user id up in the directory.
func (u *Users) Resolve(id string) (models.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.byID[id]
	return user, ok
}

// Label returns the display label for a user id, falling back to the raw id
// when the directory has no entry for it.
func (u *Users) Label(id string) string {
	if user, ok := u.Resolve(id); ok {
		return user.Label()
	}
	return id
}

// Labels maps a list of user ids to display labels, preserving order.
func (u *Users) Labels(ids []string) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, u.Label(id))
	}
	return labels
}
