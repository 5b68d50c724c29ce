package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/ds124wfegd/visionpipe/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

type minioStorage struct {
	client *minio.Client
}

func NewMinioStorage(cfg config.MinioConfig) (ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minIO client init error: %w", err)
	}

	logrus.WithField("endpoint", cfg.Endpoint).Info("MinIO client initialized")
	return &minioStorage{client: client}, nil
}

func (s *minioStorage) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("error getting object %s/%s: %w", bucket, key, err)
	}
	defer object.Close()

	// GetObject is lazy, request errors surface on the first read
	content, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("error reading object %s/%s: %w", bucket, key, err)
	}
	return content, nil
}
