package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jmanzanog/studio-portfolio/internal/domain"
)

// PortfolioRepository is an in-process domain.DocumentStore for local
// development and tests.
type PortfolioRepository struct {
	mu    sync.RWMutex
	items map[string]domain.PortfolioItem
}

func NewPortfolioRepository(seed ...domain.PortfolioItem) *PortfolioRepository {
	r := &PortfolioRepository{
		items: make(map[string]domain.PortfolioItem),
	}
	for _, item := range seed {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		r.items[item.ID] = item.Clone()
	}
	return r
}

func (r *PortfolioRepository) List(ctx context.Context) ([]domain.PortfolioItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.PortfolioItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item.Clone())
	}
	slices.SortFunc(items, func(a, b domain.PortfolioItem) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return items, nil
}

func (r *PortfolioRepository) Create(ctx context.Context, item domain.PortfolioItem) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = uuid.NewString()
	r.items[item.ID] = item.Clone()
	return item.ID, nil
}

func (r *PortfolioRepository) Update(ctx context.Context, id string, update domain.ItemUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}

	update.Apply(&item)
	r.items[id] = item
	return nil
}

func (r *PortfolioRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}
