package application

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jmanzanog/studio-portfolio/internal/domain"
)

// objectPath builds "<prefix>/<unix-millis>_<random8>_<name>". The name is
// reduced to [A-Za-z0-9._-] so the key survives public URL round trips.
func (s *PortfolioService) objectPath(name string) string {
	name = safeObjectName(path.Base(strings.ReplaceAll(name, "\\", "/")))
	if strings.Trim(name, "._") == "" {
		name = "image"
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%d_%s_%s", s.prefix, s.now().UnixMilli(), random, name)
}

func safeObjectName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// uploadAll uploads files concurrently and returns their references in
// input order. The first failure cancels the remaining uploads.
func (s *PortfolioService) uploadAll(ctx context.Context, files []domain.ImageFile) ([]string, error) {
	if len(files) == 0 {
		return nil, &domain.UploadError{Err: domain.ErrNoFiles}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type uploadResult struct {
		index int
		ref   string
		err   error
	}

	resultChan := make(chan uploadResult, len(files))
	var wg sync.WaitGroup

	for i, file := range files {
		wg.Add(1)
		go func(i int, file domain.ImageFile) {
			defer wg.Done()

			ref, err := s.objects.Upload(ctx, s.objectPath(file.Name), file.Body, file.ContentType)
			if err != nil {
				err = &domain.UploadError{Name: file.Name, Err: err}
			}
			resultChan <- uploadResult{index: i, ref: ref, err: err}
		}(i, file)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	refs := make([]string, len(files))
	var firstErr error
	for r := range resultChan {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
				cancel()
			}
			continue
		}
		refs[r.index] = r.ref
	}

	if firstErr != nil {
		uploaded := make([]string, 0, len(refs))
		for _, ref := range refs {
			if ref != "" {
				uploaded = append(uploaded, ref)
			}
		}
		logOrphans(ctx, "upload", uploaded)
		slog.ErrorContext(ctx, "Image upload failed", "error", firstErr, "files", len(files))
		return nil, firstErr
	}

	return refs, nil
}

// deleteAll removes refs from the object store concurrently.
func (s *PortfolioService) deleteAll(ctx context.Context, refs []string) error {
	if len(refs) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, len(refs))
	var wg sync.WaitGroup

	for _, ref := range refs {
		wg.Add(1)
		go func(ref string) {
			defer wg.Done()

			if err := s.objects.Delete(ctx, ref); err != nil {
				errChan <- &domain.ImageDeleteError{Ref: ref, Err: err}
			}
		}(ref)
	}

	go func() {
		wg.Wait()
		close(errChan)
	}()

	var firstErr error
	for err := range errChan {
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	if firstErr != nil {
		slog.ErrorContext(ctx, "Image deletion failed", "error", firstErr, "images", len(refs))
	}
	return firstErr
}
