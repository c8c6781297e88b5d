package ports

import (
	"context"
	"io"

	"github.com/blogora/blog-api/internal/core/domain"
)

// ImageUpload is a raw image received from the transport layer.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// BlobStorage abstracts the external image store. Upload returns the public
// URL and storage key of the stored object.
type BlobStorage interface {
	Upload(ctx context.Context, upload ImageUpload) (domain.Image, error)
	Remove(ctx context.Context, publicID string) error
	RemoveMany(ctx context.Context, publicIDs []string) error
}
