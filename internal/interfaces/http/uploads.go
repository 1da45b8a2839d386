package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/jmanzanog/studio-portfolio/internal/domain"
)

var errInvalidUpload = errors.New("invalid upload")

// readImages collects the "images[]" (or "images") files of a multipart
// request. Requests that are not multipart carry no files.
func (h *Handler) readImages(c *gin.Context) ([]domain.ImageFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", errInvalidUpload, err)
	}

	headers := append(append([]*multipart.FileHeader(nil), form.File["images[]"]...), form.File["images"]...)
	files := make([]domain.ImageFile, 0, len(headers))
	for _, fh := range headers {
		file, err := h.readImage(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func (h *Handler) readImage(fh *multipart.FileHeader) (domain.ImageFile, error) {
	if fh.Size > h.maxUploadBytes {
		return domain.ImageFile{}, fmt.Errorf("%w: %s exceeds %d bytes", errInvalidUpload, fh.Filename, h.maxUploadBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return domain.ImageFile{}, fmt.Errorf("%w: %s: %v", errInvalidUpload, fh.Filename, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		return domain.ImageFile{}, fmt.Errorf("%w: %s: %v", errInvalidUpload, fh.Filename, err)
	}
	if int64(len(data)) > h.maxUploadBytes {
		return domain.ImageFile{}, fmt.Errorf("%w: %s exceeds %d bytes", errInvalidUpload, fh.Filename, h.maxUploadBytes)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return domain.ImageFile{}, fmt.Errorf("%w: %s is %s, not an image", errInvalidUpload, fh.Filename, mtype.String())
	}

	return domain.ImageFile{
		Name:        fh.Filename,
		ContentType: mtype.String(),
		Body:        bytes.NewReader(data),
	}, nil
}
