package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmanzanog/studio-portfolio/internal/infrastructure/persistence/sqldb/migrations"
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

func (d *OracleDialect) Migrate(ctx context.Context, db *sql.DB) error {
	// Goose does not support Oracle natively in a way that is easy to cross-compile with go-ora.
	content, err := migrations.OracleFS.ReadFile("oracle/20240101000000_init.sql")
	if err != nil {
		return fmt.Errorf("reading migration file: %w", err)
	}

	// Split statements by '/' which is standard in Oracle scripts
	statements := strings.Split(string(content), "/")

	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			// ORA-00955: name is already used by an existing object
			if !strings.Contains(err.Error(), "ORA-00955") {
				return fmt.Errorf("migrating: %s: %w", stmt, err)
			}
		}
	}
	return nil
}

func (d *OracleDialect) InsertItem(ctx context.Context, tx *sql.Tx, row itemRow) error {
	query := `INSERT INTO portfolio (id, title, category, description, image_url, images, created_at, updated_at)
             VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`

	_, err := tx.ExecContext(ctx, query,
		row.ID,          // 1
		row.Title,       // 2
		row.Category,    // 3
		row.Description, // 4
		row.ImageURL,    // 5
		row.Images,      // 6
		row.CreatedAt,   // 7
		row.UpdatedAt,   // 8
	)
	return err
}
