package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Disk stores objects under Root/bucket/key. The router serves Root at
// /files.
type Disk struct {
	Root    string
	BaseURL string
}

func (d Disk) Put(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	dir := filepath.Join(d.Root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, key)
	if _, err := os.Stat(dst); err != nil {
		if err := writeFileAtomic(dir, dst, data); err != nil {
			return "", err
		}
	}
	return strings.TrimRight(d.BaseURL, "/") + path.Join("/files", bucket, key), nil
}

func writeFileAtomic(dir, dst string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
