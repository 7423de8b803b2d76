// Package storage adapts a gocloud.dev blob bucket to the MediaStore port.
//
// The bucket scheme is chosen by configuration: gs:// in production,
// file:// for local runs. Drivers are registered by the caller via blank
// imports (see cmd/api).
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gocloud.dev/blob"
)

// Bucket wraps an open blob bucket and the public base URL objects are
// served from.
type Bucket struct {
	bucket  *blob.Bucket
	baseURL string
}

// Open opens the bucket at bucketURL and returns the adapter. The caller owns
// the returned Bucket and must Close it on shutdown.
func Open(ctx context.Context, bucketURL, publicBaseURL string) (*Bucket, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("open bucket: %w", err)
	}
	return NewBucket(bucket, publicBaseURL), nil
}

// NewBucket wraps an already-open bucket; used by tests with memblob.
func NewBucket(bucket *blob.Bucket, publicBaseURL string) *Bucket {
	return &Bucket{bucket: bucket, baseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Put streams content into the bucket under key and returns the public URL.
// The object carries its declared content type so browsers render it inline.
func (b *Bucket) Put(ctx context.Context, key, contentType string, content io.Reader) (string, error) {
	w, err := b.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=86400",
	})
	if err != nil {
		return "", fmt.Errorf("new writer: %w", err)
	}

	if _, err := io.Copy(w, content); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}

	return b.baseURL + "/" + key, nil
}

// Ping reports whether the bucket answers a metadata probe; used by the
// readiness handler.
func (b *Bucket) Ping(ctx context.Context) error {
	ok, err := b.bucket.IsAccessible(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket not accessible")
	}
	return nil
}

// Close releases the underlying bucket.
func (b *Bucket) Close() error {
	return b.bucket.Close()
}
