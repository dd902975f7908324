// Package repositories wires the client's local sqlite database: the ticket
// snapshot used for offline listings and a small metadata key/value store.
package repositories

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/ticketdesk/internal/client/migrations"
	"github.com/dmitrijs2005/ticketdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ticketdesk/internal/client/repositories/tickets"
)

// Repositories bundles the local stores plus the owning DB handle.
type Repositories struct {
	Tickets  tickets.Repository
	Metadata metadata.Repository
	DB       *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the sqlite database at dsn, migrates it, and returns
// the repository set.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Tickets:  tickets.NewSQLiteRepository(db),
		Metadata: metadata.NewSQLiteRepository(db),
		DB:       db,
	}, nil
}

// Close releases the database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
