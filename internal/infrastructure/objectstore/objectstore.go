package objectstore

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmanzanog/studio-portfolio/internal/domain"
)

var ErrUnknownRef = errors.New("reference does not belong to this store")

// Config holds object storage configuration
type Config struct {
	Type      string // local, s3, r2, memory
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string // For S3/R2
	Region    string // For S3
	AccessKey string // For S3/R2
	SecretKey string // For S3/R2
	Endpoint  string // For R2 or custom S3
}

// New creates the object store selected by cfg.Type. Supabase storage is
// built with NewSupabaseStore since it shares the project client.
func New(cfg Config) (domain.ObjectStore, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStore(cfg)
	case "s3":
		return NewS3Store(cfg)
	case "r2":
		return NewR2Store(cfg)
	case "memory":
		return NewMemoryStore(cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported object store type: %s", cfg.Type)
	}
}

// publicURL joins baseURL and key, escaping each key segment.
func publicURL(baseURL, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.Join(segments, "/")
}

// keyFromRef reverses publicURL.
func keyFromRef(baseURL, ref string) (string, error) {
	prefix := strings.TrimRight(baseURL, "/") + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", fmt.Errorf("%w: %s", ErrUnknownRef, ref)
	}

	escaped := strings.TrimPrefix(ref, prefix)
	if i := strings.IndexAny(escaped, "?#"); i >= 0 {
		escaped = escaped[:i]
	}

	key, err := url.PathUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownRef, ref)
	}
	if key == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownRef, ref)
	}
	return key, nil
}
