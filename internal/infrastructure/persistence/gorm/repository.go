package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmanzanog/studio-portfolio/internal/domain"
	"gorm.io/gorm"
)

// portfolioRecord is the GORM model for the portfolio table. Images is the
// JSON encoded list and stays NULL for legacy single-image rows.
type portfolioRecord struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"not null"`
	Category    string `gorm:"not null;index"`
	Description string
	ImageURL    string
	Images      *string
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (portfolioRecord) TableName() string { return domain.PortfolioCollection }

// GormRepository implements domain.DocumentStore using GORM.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// AutoMigrate applies schema changes to the database
func (r *GormRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&portfolioRecord{})
}

func (r *GormRepository) List(ctx context.Context) ([]domain.PortfolioItem, error) {
	var records []portfolioRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		slog.Error("Failed to list portfolio", "error", err)
		return nil, err
	}

	items := make([]domain.PortfolioItem, 0, len(records))
	for _, rec := range records {
		item := domain.PortfolioItem{
			ID:          rec.ID,
			Title:       rec.Title,
			Category:    domain.Category(rec.Category),
			Description: rec.Description,
			ImageURL:    rec.ImageURL,
			CreatedAt:   rec.CreatedAt,
			UpdatedAt:   rec.UpdatedAt,
		}
		if rec.Images != nil {
			if err := json.Unmarshal([]byte(*rec.Images), &item.Images); err != nil {
				return nil, fmt.Errorf("decoding images of %s: %w", rec.ID, err)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *GormRepository) Create(ctx context.Context, item domain.PortfolioItem) (string, error) {
	images, err := encodeImages(item.Images)
	if err != nil {
		return "", err
	}

	rec := portfolioRecord{
		ID:          uuid.NewString(),
		Title:       item.Title,
		Category:    string(item.Category),
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Images:      &images,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		slog.Error("Failed to create portfolio item", "error", err)
		return "", fmt.Errorf("failed to create portfolio item: %w", err)
	}
	return rec.ID, nil
}

func (r *GormRepository) Update(ctx context.Context, id string, update domain.ItemUpdate) error {
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
		images, err := encodeImages(update.Images)
		if err != nil {
			return err
		}
		changes["images"] = images
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

	// UpdateColumns skips GORM's own updated_at handling.
	res := r.db.WithContext(ctx).Model(&portfolioRecord{}).Where("id = ?", id).UpdateColumns(changes)
	if res.Error != nil {
		slog.Error("Failed to update portfolio item", "id", id, "error", res.Error)
		return fmt.Errorf("failed to update portfolio item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		slog.Debug("Portfolio item not found", "id", id)
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&portfolioRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete portfolio item: %w", err)
	}
	return nil
}

func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("encoding images: %w", err)
	}
	return string(data), nil
}
