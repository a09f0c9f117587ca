// Package storage keeps uploaded bill photos, either on local disk or in
// an S3 compatible object store.
package storage

import (
	"context"
	"mime"
)

// Store writes an object and returns the URL it is served from. Keys are
// content digests, so writing an existing key again is harmless.
type Store interface {
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
}

// ContentType guesses the MIME type from a file extension.
func ContentType(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	switch ext {
	case ".heic":
		return "image/heic"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}
