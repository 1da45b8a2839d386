package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// BucketClient is the part of the Supabase storage client used here.
type BucketClient interface {
	UploadFile(bucketId string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	GetPublicUrl(bucketId string, filePath string, urlOptions ...storage_go.UrlOptions) storage_go.SignedUrlResponse
	RemoveFile(bucketId string, paths []string) ([]storage_go.FileUploadResponse, error)
}

// SupabaseStore keeps objects in a public Supabase Storage bucket.
type SupabaseStore struct {
	client BucketClient
	bucket string
}

func NewSupabaseStore(client BucketClient, bucket string) (*SupabaseStore, error) {
	if client == nil {
		return nil, fmt.Errorf("supabase storage client is required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket is required for Supabase storage")
	}
	return &SupabaseStore{client: client, bucket: bucket}, nil
}

func (s *SupabaseStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// storage-go puts the key into the public URL unescaped.
	if strings.ContainsAny(key, "?#%") {
		return "", fmt.Errorf("object key %q is not URL safe", key)
	}

	upsert := false
	cacheControl := "31536000"
	opts := storage_go.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	}

	if _, err := s.client.UploadFile(s.bucket, key, body, opts); err != nil {
		return "", fmt.Errorf("failed to upload to supabase storage: %w", err)
	}

	return s.client.GetPublicUrl(s.bucket, key).SignedURL, nil
}

func (s *SupabaseStore) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := s.keyFromPublicURL(ref)
	if err != nil {
		return err
	}

	if _, err := s.client.RemoveFile(s.bucket, []string{key}); err != nil {
		return fmt.Errorf("failed to delete from supabase storage: %w", err)
	}
	return nil
}

// keyFromPublicURL extracts the object key from
// <project>/storage/v1/object/public/<bucket>/<key>.
func (s *SupabaseStore) keyFromPublicURL(ref string) (string, error) {
	marker := "/object/public/" + s.bucket + "/"
	i := strings.Index(ref, marker)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrUnknownRef, ref)
	}

	escaped := ref[i+len(marker):]
	if j := strings.IndexAny(escaped, "?#"); j >= 0 {
		escaped = escaped[:j]
	}
	key, err := url.PathUnescape(escaped)
	if err != nil || key == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownRef, ref)
	}
	return key, nil
}
