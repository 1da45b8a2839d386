package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jmanzanog/studio-portfolio/internal/domain"
)

// Repository implements domain.DocumentStore on a SQL table.
type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate(ctx context.Context) error {
	return r.db.Dialect.Migrate(ctx, r.db.DB)
}

func (r *Repository) List(ctx context.Context) ([]domain.PortfolioItem, error) {
	query := `
        SELECT id, title, category, description, image_url, images, created_at, updated_at
        FROM portfolio
        ORDER BY created_at DESC
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Error("Failed to list portfolio", "error", err)
		return nil, fmt.Errorf("querying portfolio: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			slog.Error("Failed to close rows", "error", err)
		}
	}(rows)

	items := make([]domain.PortfolioItem, 0)
	for rows.Next() {
		var row itemRow
		err := rows.Scan(
			&row.ID, &row.Title, &row.Category, &row.Description,
			&row.ImageURL, &row.Images, &row.CreatedAt, &row.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		item, err := row.toItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *Repository) Create(ctx context.Context, item domain.PortfolioItem) (string, error) {
	item.ID = uuid.NewString()
	row, err := rowFromItem(item)
	if err != nil {
		return "", err
	}

	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := r.db.Dialect.InsertItem(ctx, tx, row); err != nil {
			slog.Error("Failed to insert portfolio item", "id", item.ID, "error", err)
			return fmt.Errorf("insert portfolio item: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return item.ID, nil
}

func (r *Repository) Update(ctx context.Context, id string, update domain.ItemUpdate) error {
	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		set("title", *update.Title)
	}
	if update.Category != nil {
		set("category", string(*update.Category))
	}
	if update.Description != nil {
		set("description", nullString(*update.Description))
	}
	if update.Images != nil {
		images, err := encodeImages(update.Images)
		if err != nil {
			return err
		}
		set("images", images)
	}
	if update.ImageURL != nil {
		set("image_url", nullString(*update.ImageURL))
	}
	if !update.UpdatedAt.IsZero() {
		set("updated_at", update.UpdatedAt)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := r.rebind(fmt.Sprintf("UPDATE portfolio SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)))

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			slog.Error("Failed to update portfolio item", "id", id, "error", err)
			return fmt.Errorf("update portfolio item: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update portfolio item: %w", err)
		}
		if affected == 0 {
			slog.Debug("Portfolio item not found", "id", id)
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
		}
		return nil
	})
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := r.rebind("DELETE FROM portfolio WHERE id = $1")
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("failed to delete portfolio item: %w", err)
		}
		return nil
	})
}

func (r *Repository) rebind(query string) string {
	if r.db.Dialect.Name() == "oracle" {
		for i := 10; i >= 1; i-- {
			query = strings.ReplaceAll(query, fmt.Sprintf("$%d", i), fmt.Sprintf(":%d", i))
		}
	}
	return query
}

func rowFromItem(item domain.PortfolioItem) (itemRow, error) {
	images, err := encodeImages(item.Images)
	if err != nil {
		return itemRow{}, err
	}
	return itemRow{
		ID:          item.ID,
		Title:       item.Title,
		Category:    string(item.Category),
		Description: nullString(item.Description),
		ImageURL:    nullString(item.ImageURL),
		Images:      images,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}, nil
}

func (row itemRow) toItem() (domain.PortfolioItem, error) {
	item := domain.PortfolioItem{
		ID:          row.ID,
		Title:       row.Title,
		Category:    domain.Category(row.Category),
		Description: row.Description.String,
		ImageURL:    row.ImageURL.String,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.Images.Valid && row.Images.String != "" {
		if err := json.Unmarshal([]byte(row.Images.String), &item.Images); err != nil {
			return domain.PortfolioItem{}, fmt.Errorf("decoding images of %s: %w", row.ID, err)
		}
	}
	return item, nil
}

func encodeImages(images []string) (sql.NullString, error) {
	if images == nil {
		images = []string{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encoding images: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// nullString maps "" to NULL; Oracle stores empty strings as NULL anyway.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
