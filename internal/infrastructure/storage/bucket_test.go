package storage

import (
	"context"
	"strings"
	"testing"

	"gocloud.dev/blob/memblob"
)

func TestBucket_Put_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := memblob.OpenBucket(nil)
	bucket := NewBucket(mem, "https://cdn.example.com/media/")
	defer func() { _ = bucket.Close() }()

	url, err := bucket.Put(ctx, "products/1-box-art.png", "image/png", strings.NewReader("pngdata"))
	if err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	// Trailing slash on the base URL must not double up.
	if url != "https://cdn.example.com/media/products/1-box-art.png" {
		t.Fatalf("unexpected url %q", url)
	}

	data, err := mem.ReadAll(ctx, "products/1-box-art.png")
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if string(data) != "pngdata" {
		t.Fatalf("unexpected object content %q", data)
	}

	attrs, err := mem.Attributes(ctx, "products/1-box-art.png")
	if err != nil {
		t.Fatalf("Attributes returned error: %v", err)
	}
	if attrs.ContentType != "image/png" {
		t.Fatalf("expected content type preserved, got %q", attrs.ContentType)
	}
	if attrs.CacheControl != "public, max-age=86400" {
		t.Fatalf("expected cache control set, got %q", attrs.CacheControl)
	}
}

func TestBucket_Ping(t *testing.T) {
	bucket := NewBucket(memblob.OpenBucket(nil), "https://cdn.example.com/media")
	defer func() { _ = bucket.Close() }()

	if err := bucket.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}
