package sqldb

import (
	"context"
	"database/sql"
	"time"
)

type Dialect interface {
	Name() string
	Migrate(ctx context.Context, db *sql.DB) error
	InsertItem(ctx context.Context, tx *sql.Tx, row itemRow) error
}

// itemRow is a portfolio item in column form. Images holds the JSON
// encoded list; it is NULL for rows written before multi-image support.
type itemRow struct {
	ID          string
	Title       string
	Category    string
	Description sql.NullString
	ImageURL    sql.NullString
	Images      sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
