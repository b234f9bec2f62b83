// Package upload implements the authenticated upload pipeline: multipart
// extraction, content processing, and the object-store write.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/layers/service/internal/storage"
)

// ErrInvalidMimetype is returned when an avatar's declared mimetype is not
// in the allowed image set.
var ErrInvalidMimetype = errors.New("mimetype not allowed for avatars")

// imageMimetypes is the fixed allow-list gating the avatar endpoint.
// The check runs on the client-declared type, not on sniffed bytes.
var imageMimetypes = map[string]bool{
	"image/apng": true,
	"image/avif": true,
	"image/gif":  true,
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Service contains the business logic for storing uploads.
type Service struct {
	store storage.Storage
}

// NewService creates a new upload Service backed by the given store.
func NewService(store storage.Storage) *Service {
	return &Service{store: store}
}

// StoreFile streams the uploaded bytes to the object store unmodified under a
// fresh key and returns that key. The declared mimetype and filename are
// trusted as-is; the filename lands in the object's Content-Disposition
// header so downloads keep the original name.
func (s *Service) StoreFile(ctx context.Context, uploaderID, filename, mimetype string, r io.Reader) (string, error) {
	key, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate object key: %w", err)
	}

	err = s.store.Put(ctx, key, r, -1, storage.PutOptions{
		ContentType:        mimetype,
		ContentDisposition: `attachment; filename="` + escapeQuotes(filename) + `"`,
		UserID:             uploaderID,
	})
	if err != nil {
		return "", fmt.Errorf("store file: %w", err)
	}
	return key, nil
}

// StoreAvatar validates the declared mimetype against the image allow-list,
// resizes the decoded image to exactly 500×500, re-encodes it as JPEG, and
// streams the result to the object store under a fresh key.
//
// The recorded content type is the transformed format, not the declared one:
// the object is served publicly and its metadata should describe the bytes
// it actually holds.
func (s *Service) StoreAvatar(ctx context.Context, uploaderID, mimetype string, r io.Reader) (string, error) {
	if !imageMimetypes[mimetype] {
		return "", ErrInvalidMimetype
	}

	img, err := decodeImage(r)
	if err != nil {
		return "", fmt.Errorf("decode avatar: %w", err)
	}

	key, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate object key: %w", err)
	}

	// Closing the read end after Put returns unblocks the encoder goroutine
	// when the store write fails without draining the stream.
	pr := encodeAvatar(resizeAvatar(img))
	defer pr.Close()

	err = s.store.Put(ctx, key, pr, -1, storage.PutOptions{
		ContentType: avatarContentType,
		UserID:      uploaderID,
	})
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	return key, nil
}

// escapeQuotes backslash-escapes the characters that would break a quoted
// Content-Disposition filename parameter.
func escapeQuotes(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`)
}
