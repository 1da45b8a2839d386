package domain

import (
	"context"
	"io"
)

// DocumentStore persists portfolio items in a remote collection.
// All methods accept context.Context to enable proper timeout handling,
// cancellation propagation, and request-scoped values like tracing IDs.
//
// List returns raw records ordered by CreatedAt descending; legacy records
// may lack Images. Create assigns and returns the new id. Update returns
// ErrItemNotFound when no document has the id. Delete is idempotent.
type DocumentStore interface {
	List(ctx context.Context) ([]PortfolioItem, error)
	Create(ctx context.Context, item PortfolioItem) (string, error)
	Update(ctx context.Context, id string, update ItemUpdate) error
	Delete(ctx context.Context, id string) error
}

// ObjectStore keeps binary objects addressable by path. Upload returns a
// retrievable reference (URL) which Delete accepts back.
type ObjectStore interface {
	Upload(ctx context.Context, path string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
}

// ImageFile is an image submitted for upload.
type ImageFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}
