package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/jmanzanog/studio-portfolio/internal/domain"
)

// --- Mocks ---

type fakeDocumentStore struct {
	mu      sync.Mutex
	docs    []domain.PortfolioItem
	nextID  int
	updates []domain.ItemUpdate
	deleted []string

	// When set, List signals listing after taking its snapshot and then
	// waits for release before returning it.
	listing chan struct{}
	release chan struct{}

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeDocumentStore) List(ctx context.Context) ([]domain.PortfolioItem, error) {
	f.mu.Lock()
	if f.listErr != nil {
		f.mu.Unlock()
		return nil, f.listErr
	}
	out := make([]domain.PortfolioItem, len(f.docs))
	for i, d := range f.docs {
		out[i] = d.Clone()
	}
	listing, release := f.listing, f.release
	f.mu.Unlock()

	if listing != nil {
		listing <- struct{}{}
		<-release
	}
	return out, nil
}

// blockList makes the next List calls pause after reading the documents.
func (f *fakeDocumentStore) blockList() (listing <-chan struct{}, release chan<- struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listing = make(chan struct{}, 1)
	f.release = make(chan struct{})
	return f.listing, f.release
}

func (f *fakeDocumentStore) Create(ctx context.Context, item domain.PortfolioItem) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextID++
	item.ID = fmt.Sprintf("doc-%d", f.nextID)
	f.docs = append(f.docs, item.Clone())
	return item.ID, nil
}

func (f *fakeDocumentStore) Update(ctx context.Context, id string, update domain.ItemUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.docs {
		if f.docs[i].ID == id {
			update.Apply(&f.docs[i])
			f.updates = append(f.updates, update)
			return nil
		}
	}
	return domain.ErrItemNotFound
}

func (f *fakeDocumentStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.docs = slices.DeleteFunc(f.docs, func(d domain.PortfolioItem) bool { return d.ID == id })
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeObjectStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleted   []string
	failNames map[string]bool
	failRefs  map[string]bool
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		objects:   make(map[string][]byte),
		failNames: make(map[string]bool),
		failRefs:  make(map[string]bool),
	}
}

func (f *fakeObjectStore) Upload(ctx context.Context, path string, body io.Reader, contentType string) (string, error) {
	for name := range f.failNames {
		if strings.HasSuffix(path, "_"+name) {
			return "", errors.New("storage unavailable")
		}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	ref := "https://cdn.test/" + path
	f.mu.Lock()
	f.objects[ref] = data
	f.mu.Unlock()
	return ref, nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, ref string) error {
	if f.failRefs[ref] {
		return errors.New("storage unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, ref)
	f.deleted = append(f.deleted, ref)
	return nil
}

func (f *fakeObjectStore) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}
