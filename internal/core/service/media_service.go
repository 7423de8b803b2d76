package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gamevault/storefront-api/internal/core/domain"
	"github.com/gamevault/storefront-api/internal/core/ports"
)

// MaxFileSize is the hard per-file ceiling for image uploads (5 MiB).
const MaxFileSize = 5 << 20

// allowedImageTypes maps accepted MIME types to their canonical form. The
// declared type and the filename extension must both pass.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

var allowedImageExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// MediaService validates image uploads and streams them to object storage.
type MediaService struct {
	store  ports.MediaStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewMediaService(store ports.MediaStore, logger zerolog.Logger) *MediaService {
	return &MediaService{store: store, logger: logger, now: time.Now}
}

// Upload validates and stores a single file, returning its public URL. Both
// validation failures happen before any store write.
//
// Object keys are products/<upload-millis>-<original-filename>; two uploads
// sharing the same millisecond and filename collide, which is accepted at
// storefront scale.
func (s *MediaService) Upload(ctx context.Context, file ports.FileUpload) (string, error) {
	if err := validateImage(file); err != nil {
		return "", err
	}

	key := fmt.Sprintf("products/%d-%s", s.now().UnixMilli(), file.Filename)

	url, err := s.store.Put(ctx, key, file.ContentType, file.Content)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("media upload failed")
		return "", fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}

	s.logger.Debug().Str("key", key).Int64("size", file.Size).Msg("media uploaded")
	return url, nil
}

// UploadAll stores files in order. The first failure aborts the whole batch;
// already-written objects stay in the bucket unreferenced.
func (s *MediaService) UploadAll(ctx context.Context, files []ports.FileUpload) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.Upload(ctx, f)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func validateImage(file ports.FileUpload) error {
	if file.Size > MaxFileSize {
		return domain.ErrFileTooLarge
	}

	mediaType := strings.ToLower(strings.TrimSpace(file.ContentType))
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	if _, ok := allowedImageTypes[mediaType]; !ok {
		return domain.ErrUnsupportedMedia
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return domain.ErrUnsupportedMedia
	}

	return nil
}
