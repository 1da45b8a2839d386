package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoFiles            = errors.New("at least one image is required")
	ErrItemNotFound       = errors.New("portfolio item not found")
	ErrImageNotFound      = errors.New("image not found in portfolio item")
	ErrInvalidItem        = errors.New("invalid portfolio item")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidContact     = errors.New("invalid contact message")
)

// UploadError reports a file that could not be stored in the object store.
type UploadError struct {
	Name string
	Err  error
}

func (e *UploadError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("upload failed: %v", e.Err)
	}
	return fmt.Sprintf("upload %s failed: %v", e.Name, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// PersistError reports a failed document store operation.
type PersistError struct {
	Op  string
	ID  string
	Err error
}

func (e *PersistError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s portfolio: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s portfolio item %s: %v", e.Op, e.ID, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// ImageDeleteError reports an object that could not be removed from storage.
type ImageDeleteError struct {
	Ref string
	Err error
}

func (e *ImageDeleteError) Error() string {
	return fmt.Sprintf("delete image %s: %v", e.Ref, e.Err)
}

func (e *ImageDeleteError) Unwrap() error { return e.Err }
