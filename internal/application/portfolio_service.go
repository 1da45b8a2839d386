package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jmanzanog/studio-portfolio/internal/domain"
)

const DefaultUploadPrefix = "portfolio"

// PortfolioService keeps an in-memory view of the portfolio collection in
// sync with the document store and the object store holding the images.
type PortfolioService struct {
	docs    domain.DocumentStore
	objects domain.ObjectStore
	prefix  string
	now     func() time.Time

	mu      sync.RWMutex
	items   []domain.PortfolioItem
	loading bool
	// epoch counts cache mutations confirmed by the document store.
	epoch uint64

	locks *itemLocks
}

type Option func(*PortfolioService)

// WithUploadPrefix sets the object path prefix used for uploaded images.
func WithUploadPrefix(prefix string) Option {
	return func(s *PortfolioService) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithClock overrides the time source used for timestamps and object names.
func WithClock(now func() time.Time) Option {
	return func(s *PortfolioService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewPortfolioService(docs domain.DocumentStore, objects domain.ObjectStore, opts ...Option) *PortfolioService {
	s := &PortfolioService{
		docs:    docs,
		objects: objects,
		prefix:  DefaultUploadPrefix,
		now:     time.Now,
		items:   []domain.PortfolioItem{},
		locks:   newItemLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh reloads the cache from the document store. On failure the
// previous cache is kept. A listing that overlapped a confirmed mutation is
// discarded, since it may predate that write.
func (s *PortfolioService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	epoch := s.epoch
	s.mu.Unlock()
	defer s.setLoading(false)

	raw, err := s.docs.List(ctx)
	if err != nil {
		return &domain.PersistError{Op: "list", Err: err}
	}

	items := make([]domain.PortfolioItem, len(raw))
	for i, r := range raw {
		items[i] = domain.NormalizeItem(r)
	}
	slices.SortStableFunc(items, func(a, b domain.PortfolioItem) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		slog.DebugContext(ctx, "Portfolio refresh discarded after concurrent write", "count", len(items))
		return nil
	}
	s.items = items
	s.mu.Unlock()

	slog.InfoContext(ctx, "Portfolio cache refreshed", "count", len(items))
	return nil
}

func (s *PortfolioService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Items returns a copy of the cached items, newest first.
func (s *PortfolioService) Items() []domain.PortfolioItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PortfolioItem, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out
}

func (s *PortfolioService) ItemsByCategory(category domain.Category) []domain.PortfolioItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PortfolioItem, 0)
	for _, item := range s.items {
		if item.Category == category {
			out = append(out, item.Clone())
		}
	}
	return out
}

func (s *PortfolioService) Get(id string) (*domain.PortfolioItem, error) {
	item, ok := s.cached(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return &item, nil
}

// Add uploads files, creates the document and prepends it to the cache.
func (s *PortfolioService) Add(ctx context.Context, fields domain.ItemFields, files []domain.ImageFile) (*domain.PortfolioItem, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	refs, err := s.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	item := domain.PortfolioItem{
		Title:       fields.Title,
		Category:    fields.Category,
		Description: fields.Description,
		ImageURL:    refs[0],
		Images:      refs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.docs.Create(ctx, item)
	if err != nil {
		logOrphans(ctx, "create", refs)
		return nil, &domain.PersistError{Op: "create", Err: err}
	}
	item.ID = id

	s.mu.Lock()
	// A refresh that listed after Create may already hold the item.
	rest := slices.DeleteFunc(s.items, func(cached domain.PortfolioItem) bool {
		return cached.ID == id
	})
	s.items = append([]domain.PortfolioItem{item}, rest...)
	s.epoch++
	s.mu.Unlock()

	slog.InfoContext(ctx, "Portfolio item added", "id", id, "images", len(refs))
	out := item.Clone()
	return &out, nil
}

// Update applies patch to a cached item, appending newFiles to its images.
func (s *PortfolioService) Update(ctx context.Context, id string, patch domain.ItemPatch, newFiles []domain.ImageFile) (*domain.PortfolioItem, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	current, ok := s.cached(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}

	update := domain.NewItemUpdate(patch, s.now().UTC())
	var refs []string
	if len(newFiles) > 0 {
		var err error
		refs, err = s.uploadAll(ctx, newFiles)
		if err != nil {
			return nil, err
		}
		update = update.WithImages(append(slices.Clone(current.Images), refs...))
	}

	if err := s.docs.Update(ctx, id, update); err != nil {
		logOrphans(ctx, "update", refs)
		s.evictIfGone(ctx, id, err)
		return nil, &domain.PersistError{Op: "update", ID: id, Err: err}
	}

	updated := s.patchCached(id, update)
	slog.InfoContext(ctx, "Portfolio item updated", "id", id, "new_images", len(refs))
	return updated, nil
}

// Delete removes the given images and then the document. When any image
// deletion fails the document is kept.
func (s *PortfolioService) Delete(ctx context.Context, id string, images []string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	return s.delete(ctx, id, images)
}

// DeleteItem deletes a cached item together with all of its images.
func (s *PortfolioService) DeleteItem(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	item, ok := s.cached(id)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return s.delete(ctx, id, item.Images)
}

// RemoveImage deletes one image of an item. When it was the last image the
// whole item is deleted and a nil item is returned.
func (s *PortfolioService) RemoveImage(ctx context.Context, id, ref string) (*domain.PortfolioItem, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	item, ok := s.cached(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	if !item.HasImage(ref) {
		return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, ref)
	}

	if err := s.objects.Delete(ctx, ref); err != nil {
		return nil, &domain.ImageDeleteError{Ref: ref, Err: err}
	}

	remaining := slices.DeleteFunc(slices.Clone(item.Images), func(img string) bool {
		return img == ref
	})
	if len(remaining) == 0 {
		if err := s.delete(ctx, id, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}

	update := domain.ItemUpdate{UpdatedAt: s.now().UTC()}.WithImages(remaining)
	if err := s.docs.Update(ctx, id, update); err != nil {
		s.evictIfGone(ctx, id, err)
		return nil, &domain.PersistError{Op: "update", ID: id, Err: err}
	}

	updated := s.patchCached(id, update)
	slog.InfoContext(ctx, "Portfolio image removed", "id", id, "remaining", len(remaining))
	return updated, nil
}

func (s *PortfolioService) delete(ctx context.Context, id string, images []string) error {
	if err := s.deleteAll(ctx, images); err != nil {
		return err
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		return &domain.PersistError{Op: "delete", ID: id, Err: err}
	}

	s.uncache(id)

	slog.InfoContext(ctx, "Portfolio item deleted", "id", id, "images", len(images))
	return nil
}

func (s *PortfolioService) uncache(id string) {
	s.mu.Lock()
	s.items = slices.DeleteFunc(s.items, func(item domain.PortfolioItem) bool {
		return item.ID == id
	})
	s.epoch++
	s.mu.Unlock()
}

// evictIfGone drops the cache entry of a document removed behind our back.
func (s *PortfolioService) evictIfGone(ctx context.Context, id string, err error) {
	if !errors.Is(err, domain.ErrItemNotFound) {
		return
	}
	s.uncache(id)
	slog.WarnContext(ctx, "Cached portfolio item no longer in store", "id", id)
}

func (s *PortfolioService) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *PortfolioService) cached(id string) (domain.PortfolioItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item.Clone(), true
		}
	}
	return domain.PortfolioItem{}, false
}

// patchCached applies update to the cache entry in place. The entry may
// have vanished through a concurrent Refresh; the returned item is then
// built from the store write alone.
func (s *PortfolioService) patchCached(id string, update domain.ItemUpdate) *domain.PortfolioItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	for i := range s.items {
		if s.items[i].ID == id {
			update.Apply(&s.items[i])
			out := s.items[i].Clone()
			return &out
		}
	}

	out := domain.PortfolioItem{ID: id}
	update.Apply(&out)
	return &out
}

func logOrphans(ctx context.Context, op string, refs []string) {
	for _, ref := range refs {
		slog.WarnContext(ctx, "Uploaded image left without a document", "op", op, "ref", ref)
	}
}

// IsClientError reports whether err was caused by invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidItem) ||
		errors.Is(err, domain.ErrNoFiles) ||
		errors.Is(err, domain.ErrInvalidContact)
}
