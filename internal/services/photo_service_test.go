package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fleetbilling/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoSaveIsContentAddressed(t *testing.T) {
	root := t.TempDir()
	svc := PhotoService{Root: root, BaseURL: "http://localhost:8080/"}
	ctx := context.Background()

	a, err := svc.Save(ctx, "fuel_bills", "IMG_1.JPG", strings.NewReader("same-bytes"))
	require.NoError(t, err)
	b, err := svc.Save(ctx, "fuel_bills", "other.jpg", strings.NewReader("same-bytes"))
	require.NoError(t, err)

	assert.Equal(t, a.Key, b.Key)
	assert.True(t, strings.HasSuffix(a.Key, ".jpg"))
	assert.Equal(t, "http://localhost:8080/files/fuel_bills/"+a.Key, a.URL)

	data, err := os.ReadFile(filepath.Join(root, "fuel_bills", a.Key))
	require.NoError(t, err)
	assert.Equal(t, "same-bytes", string(data))

	c, err := svc.Save(ctx, "fuel_bills", "x.png", strings.NewReader("other-bytes"))
	require.NoError(t, err)
	assert.NotEqual(t, a.Key, c.Key)
}

func TestPhotoSaveRejects(t *testing.T) {
	svc := PhotoService{Root: t.TempDir(), MaxBytes: 4}
	ctx := context.Background()

	_, err := svc.Save(ctx, "receipts", "a.jpg", strings.NewReader("x"))
	assert.True(t, domain.IsValidation(err))
	_, err = svc.Save(ctx, "basket_bills", "a.gif", strings.NewReader("x"))
	assert.True(t, domain.IsValidation(err))
	_, err = svc.Save(ctx, "basket_bills", "a.heic", strings.NewReader(""))
	assert.True(t, domain.IsValidation(err))
	_, err = svc.Save(ctx, "basket_bills", "a.webp", strings.NewReader("12345"))
	assert.True(t, domain.IsValidation(err))
	_, err = svc.Save(ctx, "maintenance_bills", "a.jpeg", strings.NewReader("1234"))
	assert.NoError(t, err)
}

type failingStore struct{}

func (failingStore) Put(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	return "", errors.New("connection refused")
}

func TestPhotoSaveStoreFailureIsInternal(t *testing.T) {
	svc := PhotoService{Store: failingStore{}}
	_, err := svc.Save(context.Background(), "fuel_bills", "a.jpg", strings.NewReader("x"))
	require.Error(t, err)
	assert.False(t, domain.IsValidation(err))
	assert.NotContains(t, err.Error(), "connection refused")
}
