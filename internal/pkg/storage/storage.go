// object stores the pipeline downloads uploaded images from
package storage

import (
	"context"
	"fmt"

	"github.com/ds124wfegd/visionpipe/config"
	"github.com/ds124wfegd/visionpipe/internal/entity"
)

type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
}

// New builds the configured backend. s3Client is only used for "s3".
func New(cfg config.ObjectStoreConfig, s3Client S3API) (ObjectStore, error) {
	switch cfg.Backend {
	case "", "s3":
		return NewS3Storage(s3Client), nil
	case "minio":
		return NewMinioStorage(cfg.Minio)
	case "file":
		return NewFileStorage(cfg.BasePath), nil
	default:
		return nil, fmt.Errorf("%w: object store %q", entity.ErrUnknownBackend, cfg.Backend)
	}
}
