package media

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/config"
	"atelier/internal/domain"
	"atelier/internal/domain/services"
)

type stubS3Client struct {
	bucketExists   bool
	bucketErr      error
	putErr         error
	lastPutKey     string
	lastPutType    string
	lastEndpoint   string
	lastSecureFlag bool
}

func (c *stubS3Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return c.bucketExists, c.bucketErr
}

func (c *stubS3Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	c.lastPutKey = objectName
	c.lastPutType = opts.ContentType
	if c.putErr != nil {
		return minio.UploadInfo{}, c.putErr
	}
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func withStubClient(t *testing.T, stub *stubS3Client) {
	t.Helper()
	prev := newMinioClient
	newMinioClient = func(endpoint string, opts *minio.Options) (s3Client, error) {
		stub.lastEndpoint = endpoint
		stub.lastSecureFlag = opts.Secure
		return stub, nil
	}
	t.Cleanup(func() { newMinioClient = prev })
}

func mediaConfig() *config.Config {
	return &config.Config{
		MediaEndpoint:  "https://s3.example.com",
		MediaAccessKey: "key",
		MediaSecretKey: "secret",
		MediaBucket:    "atelier-media",
		MediaUseSSL:    true,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func image(name string, size int64) *services.UploadedFile {
	return &services.UploadedFile{
		Name:        name,
		ContentType: "image/jpeg",
		Size:        size,
		Body:        strings.NewReader(strings.Repeat("x", int(size))),
	}
}

func TestNewS3StoreChecksBucket(t *testing.T) {
	stub := &stubS3Client{bucketExists: false}
	withStubClient(t, stub)

	_, err := NewS3Store(context.Background(), mediaConfig(), quietLogger())
	assert.Error(t, err)
	assert.Equal(t, "s3.example.com", stub.lastEndpoint)
	assert.True(t, stub.lastSecureFlag)
}

func TestNewS3StoreClientError(t *testing.T) {
	prev := newMinioClient
	newMinioClient = func(endpoint string, opts *minio.Options) (s3Client, error) {
		return nil, errors.New("boom")
	}
	t.Cleanup(func() { newMinioClient = prev })

	_, err := NewS3Store(context.Background(), mediaConfig(), quietLogger())
	assert.Error(t, err)
}

func TestUpload(t *testing.T) {
	stub := &stubS3Client{bucketExists: true}
	withStubClient(t, stub)
	store, err := NewS3Store(context.Background(), mediaConfig(), quietLogger())
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "projects", image("Velvet Sofa Cover.JPG", 12))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stub.lastPutKey, "projects/velvet-sofa-cover-"), stub.lastPutKey)
	assert.True(t, strings.HasSuffix(stub.lastPutKey, ".jpg"), stub.lastPutKey)
	assert.Equal(t, "image/jpeg", stub.lastPutType)
	assert.Equal(t, "https://s3.example.com/atelier-media/"+stub.lastPutKey, url)
}

func TestUploadUsesPublicBaseURL(t *testing.T) {
	stub := &stubS3Client{bucketExists: true}
	withStubClient(t, stub)
	cfg := mediaConfig()
	cfg.MediaPublicBaseURL = "https://cdn.example.com/"
	store, err := NewS3Store(context.Background(), cfg, quietLogger())
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "content", image("hero.png", 3))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+stub.lastPutKey, url)
}

func TestUploadRejects(t *testing.T) {
	stub := &stubS3Client{bucketExists: true}
	withStubClient(t, stub)
	store, err := NewS3Store(context.Background(), mediaConfig(), quietLogger())
	require.NoError(t, err)

	pdf := image("brochure.pdf", 10)
	pdf.ContentType = "application/pdf"

	tests := []struct {
		name       string
		collection string
		file       *services.UploadedFile
	}{
		{"unknown collection", "invoices", image("a.jpg", 1)},
		{"missing file", "projects", nil},
		{"not an image", "projects", pdf},
		{"empty file", "projects", image("a.jpg", 0)},
		{"too large", "projects", &services.UploadedFile{Name: "a.jpg", ContentType: "image/jpeg", Size: config.MaxUploadSize + 1, Body: strings.NewReader("")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Upload(context.Background(), tt.collection, tt.file)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, stub.lastPutKey)
}

func TestUploadPropagatesStoreError(t *testing.T) {
	stub := &stubS3Client{bucketExists: true, putErr: errors.New("denied")}
	withStubClient(t, stub)
	store, err := NewS3Store(context.Background(), mediaConfig(), quietLogger())
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "clients", image("logo.png", 4))
	assert.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("categories", "", "image/png")
	assert.True(t, strings.HasPrefix(key, "categories/image-"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
}

func TestDisabledService(t *testing.T) {
	svc, err := NewService(context.Background(), &config.Config{}, quietLogger())
	require.NoError(t, err)

	_, err = svc.Upload(context.Background(), "projects", image("a.jpg", 1))
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
