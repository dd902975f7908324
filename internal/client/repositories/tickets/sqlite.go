package tickets

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ticketdesk/internal/client/models"
	"github.com/dmitrijs2005/ticketdesk/internal/dbx"
)

// SQLiteRepository implements Repository on a local sqlite database.
// The assignee list is stored as a JSON array, timestamps as RFC 3339 text.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll swaps the whole snapshot inside one transaction: the stored
// listing always corresponds to exactly one server response.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, list []models.Ticket) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tickets`); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
		for _, t := range list {
			assigned, err := json.Marshal(t.AssignedTo)
			if err != nil {
				return err
			}
			var updated any
			if t.UpdatedAt != nil {
				updated = t.UpdatedAt.Format(time.RFC3339Nano)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO tickets (id, title, description, created_by, assigned_to, priority, state, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID, t.Title, t.Description, t.CreatedBy, string(assigned),
				string(t.Priority), string(t.State),
				t.CreatedAt.Format(time.RFC3339Nano), updated)
			if err != nil {
				return fmt.Errorf("failed to insert ticket %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

const selectColumns = `id, title, description, created_by, assigned_to, priority, state, created_at, updated_at`

// GetAll lists the stored snapshot.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM tickets ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to select tickets: %w", err)
	}
	defer rows.Close()

	var result []models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns one snapshot ticket.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM tickets WHERE id = ?`, id)
	return scanTicket(row.Scan)
}

func scanTicket(scan func(dest ...any) error) (*models.Ticket, error) {
	var (
		t         models.Ticket
		assigned  string
		priority  string
		state     string
		createdAt string
		updatedAt sql.NullString
	)
	if err := scan(&t.ID, &t.Title, &t.Description, &t.CreatedBy,
		&assigned, &priority, &state, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(assigned), &t.AssignedTo); err != nil {
		return nil, fmt.Errorf("failed to decode assignees: %w", err)
	}
	t.Priority = models.TicketPriority(priority)
	t.State = models.TicketState(state)

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	t.CreatedAt = created

	if updatedAt.Valid {
		updated, err := time.Parse(time.RFC3339Nano, updatedAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}
		t.UpdatedAt = &updated
	}
	return &t, nil
}
