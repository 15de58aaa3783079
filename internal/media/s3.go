// Package media stores admin-uploaded images in an S3 compatible bucket
// (MinIO, R2, AWS) and hands back their public URL.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"atelier/internal/config"
	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/services"
)

type s3Client interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

var newMinioClient = func(endpoint string, opts *minio.Options) (s3Client, error) {
	return minio.New(endpoint, opts)
}

// Store uploads images under <collection>/<slug>-<id8><ext>
type Store struct {
	client     s3Client
	bucket     string
	publicBase string
	logger     *slog.Logger
}

// NewService returns the S3 store when MEDIA_ENDPOINT is set, and a disabled
// service answering domain.ErrUnavailable otherwise.
func NewService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.MediaService, error) {
	if strings.TrimSpace(cfg.MediaEndpoint) == "" {
		logger.Info("media uploads disabled, MEDIA_ENDPOINT not set")
		return disabled{}, nil
	}
	return NewS3Store(ctx, cfg, logger)
}

// NewS3Store connects to the bucket and verifies it exists
func NewS3Store(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	endpointHost := strings.TrimSpace(cfg.MediaEndpoint)
	if parsed, err := url.Parse(endpointHost); err == nil && parsed.Host != "" {
		endpointHost = parsed.Host
	}
	if endpointHost == "" {
		return nil, fmt.Errorf("media endpoint: %w", domain.ErrValidation)
	}

	client, err := newMinioClient(endpointHost, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		Secure:       cfg.MediaUseSSL,
		BucketLookup: minio.BucketLookupAuto,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(checkCtx, cfg.MediaBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to verify s3 bucket %q: %w", cfg.MediaBucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("s3 bucket %q does not exist or is not accessible", cfg.MediaBucket)
	}

	publicBase := strings.TrimSuffix(cfg.MediaPublicBaseURL, "/")
	if publicBase == "" {
		scheme := "http"
		if cfg.MediaUseSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s/%s", scheme, endpointHost, cfg.MediaBucket)
	}

	logger.Info("media store ready", "bucket", cfg.MediaBucket, "public_base", publicBase)

	return &Store{
		client:     client,
		bucket:     cfg.MediaBucket,
		publicBase: publicBase,
		logger:     logger,
	}, nil
}

// Upload validates file and puts it in the bucket
func (s *Store) Upload(ctx context.Context, collection string, file *services.UploadedFile) (string, error) {
	if err := validateUpload(collection, file); err != nil {
		return "", err
	}

	key := ObjectKey(collection, file.Name, file.ContentType)
	opts := minio.PutObjectOptions{ContentType: file.ContentType}
	if _, err := s.client.PutObject(ctx, s.bucket, key, file.Body, file.Size, opts); err != nil {
		return "", fmt.Errorf("upload to s3 failed: %w", err)
	}

	s.logger.Info("media uploaded", "collection", collection, "key", key, "size", file.Size)
	return s.publicBase + "/" + key, nil
}

// ObjectKey builds a unique, URL-safe object key for an upload
func ObjectKey(collection, filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" && contentType != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	base := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s/%s-%s%s", collection, base, uuid.New().String()[:8], ext)
}

func validateUpload(collection string, file *services.UploadedFile) error {
	if collection != content.CollectionContent && !slices.Contains(content.Collections, collection) {
		return fmt.Errorf("%w: unknown collection %q", domain.ErrValidation, collection)
	}
	if file == nil || file.Body == nil {
		return fmt.Errorf("%w: file is required", domain.ErrValidation)
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return fmt.Errorf("%w: only images can be uploaded, got %q", domain.ErrValidation, file.ContentType)
	}
	if file.Size <= 0 || file.Size > config.MaxUploadSize {
		return fmt.Errorf("%w: file size must be between 1 byte and %d bytes", domain.ErrValidation, config.MaxUploadSize)
	}
	return nil
}

type disabled struct{}

func (disabled) Upload(context.Context, string, *services.UploadedFile) (string, error) {
	return "", fmt.Errorf("media uploads: %w", domain.ErrUnavailable)
}
