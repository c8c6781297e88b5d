// Package storage implements ports.BlobStorage on MinIO (or any S3-compatible
// store). Uploaded images get a uuid object key and a public URL derived from
// the bucket endpoint.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/core/ports"
)

const (
	maxImageSize = 5 * 1024 * 1024 // 5 MB
	imagePrefix  = "images"
)

var (
	ErrFileTooBig      = errors.New("file size exceeds 5MB limit")
	ErrInvalidFileType = errors.New("invalid file type, only JPEG and PNG images are allowed")

	allowedContentTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
	}
)

// Config captures the settings for the image bucket.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is the externally reachable prefix for stored objects,
	// e.g. https://cdn.example.com/blog-images.
	PublicBaseURL string
}

// MinioStorage is the MinIO-backed BlobStorage implementation.
type MinioStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

var _ ports.BlobStorage = (*MinioStorage)(nil)

// New connects to the object store and ensures the bucket exists.
func New(ctx context.Context, cfg Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	s := &MinioStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return s, nil
}

// Upload validates and stores an image, returning its public URL and key.
func (s *MinioStorage) Upload(ctx context.Context, upload ports.ImageUpload) (domain.Image, error) {
	if upload.Size > maxImageSize {
		return domain.Image{}, ErrFileTooBig
	}

	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return domain.Image{}, ErrInvalidFileType
	}

	key := fmt.Sprintf("%s/%s%s", imagePrefix, uuid.New().String(), ext)
	_, err := s.client.PutObject(ctx, s.bucket, key, upload.Reader, upload.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return domain.Image{}, fmt.Errorf("upload image: %w", err)
	}

	return domain.Image{URL: s.baseURL + "/" + key, PublicID: key}, nil
}

// Remove deletes one stored object. Empty keys are a no-op.
func (s *MinioStorage) Remove(ctx context.Context, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

// RemoveMany deletes a batch of stored objects, stopping at the first failure.
func (s *MinioStorage) RemoveMany(ctx context.Context, publicIDs []string) error {
	for _, id := range publicIDs {
		if err := s.Remove(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
