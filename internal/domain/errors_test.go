package domain

import (
	"errors"
	"testing"
)

func TestErrorTypes_Unwrap(t *testing.T) {
	cause := errors.New("network down")

	var uploadErr error = &UploadError{Name: "a.jpg", Err: cause}
	var persistErr error = &PersistError{Op: "create", Err: cause}
	var deleteErr error = &ImageDeleteError{Ref: "https://cdn/a.jpg", Err: cause}

	for _, err := range []error{uploadErr, persistErr, deleteErr} {
		if !errors.Is(err, cause) {
			t.Errorf("%T does not unwrap to its cause", err)
		}
	}

	var target *UploadError
	if !errors.As(uploadErr, &target) || target.Name != "a.jpg" {
		t.Errorf("errors.As failed for UploadError: %v", uploadErr)
	}
}

func TestErrorMessages(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{&UploadError{Err: ErrNoFiles}, "upload failed: at least one image is required"},
		{&UploadError{Name: "a.jpg", Err: errors.New("boom")}, "upload a.jpg failed: boom"},
		{&PersistError{Op: "list", Err: errors.New("boom")}, "list portfolio: boom"},
		{&PersistError{Op: "update", ID: "42", Err: errors.New("boom")}, "update portfolio item 42: boom"},
		{&ImageDeleteError{Ref: "r", Err: errors.New("boom")}, "delete image r: boom"},
	}

	for _, tc := range testCases {
		if tc.err.Error() != tc.want {
			t.Errorf("expected %q, got %q", tc.want, tc.err.Error())
		}
	}
}
