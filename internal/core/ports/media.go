package ports

import (
	"context"
	"io"
)

// FileUpload is the transport-agnostic view of one uploaded file.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// MediaStore writes an object to the backing bucket and returns its canonical
// public URL.
type MediaStore interface {
	Put(ctx context.Context, key, contentType string, content io.Reader) (string, error)
}

// MediaService validates and ingests image uploads.
type MediaService interface {
	// Upload stores one file and returns its public URL. Fails with
	// domain.ErrUnsupportedMedia or domain.ErrFileTooLarge before any store
	// write occurs.
	Upload(ctx context.Context, file FileUpload) (string, error)
	// UploadAll stores files in order; the first failure aborts the batch.
	UploadAll(ctx context.Context, files []FileUpload) ([]string, error)
}
