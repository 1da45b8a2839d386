package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmanzanog/studio-portfolio/internal/infrastructure/persistence/sqldb/migrations"
	"github.com/pressly/goose/v3"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.PostgresFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "postgres"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

func (d *PostgresDialect) InsertItem(ctx context.Context, tx *sql.Tx, row itemRow) error {
	query := `
		INSERT INTO portfolio (id, title, category, description, image_url, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.ExecContext(ctx, query,
		row.ID, row.Title, row.Category, row.Description, row.ImageURL, row.Images, row.CreatedAt, row.UpdatedAt)
	return err
}
