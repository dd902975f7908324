package tickets

import (
	"context"

	"github.com/dmitrijs2005/ticketdesk/internal/client/models"
)

// Repository persists the last fully synced ticket listing. Implementations
// are backed by a local sqlite database.
type Repository interface {
	// ReplaceAll atomically swaps the stored snapshot for the given listing.
	ReplaceAll(ctx context.Context, tickets []models.Ticket) error

	// GetAll returns the stored snapshot in insertion order.
	GetAll(ctx context.Context) ([]models.Ticket, error)

	// GetByID returns one snapshot ticket or sql.ErrNoRows.
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
}
