package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/jibarix/map-viz/internal/errors"
	"github.com/jibarix/map-viz/ports"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS upload_catalog (
	id               TEXT PRIMARY KEY,
	filename         TEXT NOT NULL,
	row_count        INTEGER NOT NULL,
	valid_sales      INTEGER NOT NULL,
	has_coordinates  BOOLEAN NOT NULL,
	has_transactions BOOLEAN NOT NULL,
	uploaded_at      TIMESTAMPTZ NOT NULL
)`

// catalog implements the Catalog interface on Postgres
type catalog struct {
	db *sqlx.DB
}

// NewCatalog creates the upload catalog, applying its schema if the
// table does not exist yet.
func NewCatalog(db *sqlx.DB) (ports.Catalog, error) {
	if _, err := db.Exec(catalogSchema); err != nil {
		return nil, errors.Wrap(err, "failed to create upload catalog schema")
	}
	return &catalog{db: db}, nil
}

// Record inserts one upload entry
func (c *catalog) Record(ctx context.Context, entry ports.CatalogEntry) error {
	query := `INSERT INTO upload_catalog (
		id, filename, row_count, valid_sales, has_coordinates, has_transactions, uploaded_at
	) VALUES (:id, :filename, :row_count, :valid_sales, :has_coordinates, :has_transactions, :uploaded_at)`

	if _, err := c.db.NamedExecContext(ctx, query, entry); err != nil {
		return errors.Storage("failed to record upload", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first
func (c *catalog) Recent(ctx context.Context, limit int) ([]ports.CatalogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, filename, row_count, valid_sales, has_coordinates, has_transactions, uploaded_at
		FROM upload_catalog ORDER BY uploaded_at DESC LIMIT $1`

	var entries []ports.CatalogEntry
	if err := c.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, errors.Storage("failed to list uploads", err)
	}
	return entries, nil
}
