package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fleetbilling/internal/domain"
	"fleetbilling/internal/storage"
	"fleetbilling/internal/utils"

	"golang.org/x/crypto/blake2b"
)

const defaultMaxPhotoBytes = 10 << 20

var photoBuckets = map[string]bool{
	"fuel_bills":        true,
	"maintenance_bills": true,
	"basket_bills":      true,
}

var photoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
}

// PhotoService validates bill photos and hands them to a Store. Objects
// are keyed by a content digest, so uploading the same photo twice yields
// one object and one URL.
type PhotoService struct {
	Store storage.Store
	// Root and BaseURL configure the disk store used when Store is nil.
	Root      string
	BaseURL   string
	MaxBytes  int64
	RequestID string
}

type Photo struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	URL    string `json:"url"`
	Size   int64  `json:"size"`
}

func (s PhotoService) store() storage.Store {
	if s.Store != nil {
		return s.Store
	}
	return storage.Disk{Root: s.Root, BaseURL: s.BaseURL}
}

func (s PhotoService) Save(ctx context.Context, bucket, filename string, r io.Reader) (Photo, error) {
	if !photoBuckets[bucket] {
		return Photo{}, domain.Invalid("bucket", "unknown bucket "+bucket)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !photoExts[ext] {
		return Photo{}, domain.Invalid("file", "only jpg, jpeg, png, webp or heic images are accepted")
	}

	limit := s.MaxBytes
	if limit <= 0 {
		limit = defaultMaxPhotoBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Photo{}, domain.Internal("read upload failed", err)
	}
	if len(data) == 0 {
		return Photo{}, domain.Invalid("file", "empty upload")
	}
	if int64(len(data)) > limit {
		return Photo{}, domain.Invalid("file", fmt.Sprintf("larger than %d bytes", limit))
	}

	sum := blake2b.Sum256(data)
	key := hex.EncodeToString(sum[:16]) + ext
	url, err := s.store().Put(ctx, bucket, key, data, storage.ContentType(ext))
	if err != nil {
		return Photo{}, domain.Internal("store upload failed", err)
	}

	p := Photo{Bucket: bucket, Key: key, URL: url, Size: int64(len(data))}
	utils.LogEvent(s.RequestID, "photos", "upload", fmt.Sprintf("bucket=%s key=%s size=%d", bucket, key, p.Size))
	return p, nil
}
