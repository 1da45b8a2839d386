package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmanzanog/studio-portfolio/internal/domain"
	"github.com/supabase-community/postgrest-go"
)

// QueryClient is satisfied by both *postgrest.Client and *supabase.Client.
type QueryClient interface {
	From(table string) *postgrest.QueryBuilder
}

// NewRESTClient builds a PostgREST client for a Supabase project using the
// service key for both the apikey and bearer headers.
func NewRESTClient(supabaseURL, serviceKey string) (*postgrest.Client, error) {
	if supabaseURL == "" || serviceKey == "" {
		return nil, fmt.Errorf("supabase url and service key are required")
	}

	client := postgrest.NewClient(supabaseURL+"/rest/v1", "", map[string]string{
		"apikey":        serviceKey,
		"Authorization": fmt.Sprintf("Bearer %s", serviceKey),
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("failed to initialize postgrest client: %w", client.ClientError)
	}
	return client, nil
}

// Repository implements domain.DocumentStore on a Supabase table.
type Repository struct {
	client QueryClient
	table  string
}

func NewRepository(client QueryClient) *Repository {
	return &Repository{client: client, table: domain.PortfolioCollection}
}

type insertRow struct {
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *Repository) List(ctx context.Context) ([]domain.PortfolioItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, _, err := r.client.From(r.table).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list portfolio", "error", err)
		return nil, fmt.Errorf("querying %s: %w", r.table, err)
	}

	var items []domain.PortfolioItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.table, err)
	}
	if items == nil {
		items = []domain.PortfolioItem{}
	}
	return items, nil
}

func (r *Repository) Create(ctx context.Context, item domain.PortfolioItem) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	row := insertRow{
		Title:       item.Title,
		Category:    string(item.Category),
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Images:      item.Images,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}

	var created []domain.PortfolioItem
	if _, err := r.client.From(r.table).Insert(row, false, "", "representation", "").ExecuteTo(&created); err != nil {
		slog.ErrorContext(ctx, "Failed to insert portfolio item", "error", err)
		return "", fmt.Errorf("insert into %s: %w", r.table, err)
	}
	if len(created) == 0 || created[0].ID == "" {
		return "", fmt.Errorf("insert into %s: no record returned", r.table)
	}
	return created[0].ID, nil
}

func (r *Repository) Update(ctx context.Context, id string, update domain.ItemUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	changes := map[string]any{}
	if update.Title != nil {
		changes["title"] = *update.Title
	}
	if update.Category != nil {
		changes["category"] = string(*update.Category)
	}
	if update.Description != nil {
		changes["description"] = *update.Description
	}
	if update.Images != nil {
		changes["images"] = update.Images
	}
	if update.ImageURL != nil {
		changes["image_url"] = *update.ImageURL
	}
	if !update.UpdatedAt.IsZero() {
		changes["updated_at"] = update.UpdatedAt
	}
	if len(changes) == 0 {
		return nil
	}

	var updated []domain.PortfolioItem
	_, err := r.client.From(r.table).Update(changes, "representation", "").Eq("id", id).ExecuteTo(&updated)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to update portfolio item", "id", id, "error", err)
		return fmt.Errorf("update %s: %w", r.table, err)
	}
	if len(updated) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, _, err := r.client.From(r.table).Delete("minimal", "").Eq("id", id).Execute(); err != nil {
		slog.ErrorContext(ctx, "Failed to delete portfolio item", "id", id, "error", err)
		return fmt.Errorf("delete from %s: %w", r.table, err)
	}
	return nil
}
