// Package ports declares the interfaces the application depends on,
// keeping storage concerns behind narrow contracts.
package ports

import (
	"context"
	"time"
)

// CatalogEntry records one dataset upload: what file came in, how many
// rows survived cleaning, and what the cleaned table could support.
type CatalogEntry struct {
	ID              string    `db:"id"`
	Filename        string    `db:"filename"`
	RowCount        int       `db:"row_count"`
	ValidSales      int       `db:"valid_sales"`
	HasCoordinates  bool      `db:"has_coordinates"`
	HasTransactions bool      `db:"has_transactions"`
	UploadedAt      time.Time `db:"uploaded_at"`
}

// Catalog persists upload history. The dashboard runs fine without
// one; a nil Catalog disables history rather than failing uploads.
type Catalog interface {
	Record(ctx context.Context, entry CatalogEntry) error
	Recent(ctx context.Context, limit int) ([]CatalogEntry, error)
}
