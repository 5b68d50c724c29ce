package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fileStorage maps bucket/key onto basePath/bucket/key.
type fileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) ObjectStore {
	return &fileStorage{basePath: basePath}
}

func (s *fileStorage) fullPath(bucket, key string) (string, error) {
	base := filepath.Clean(s.basePath)
	full := filepath.Join(base, bucket, key)
	rel, err := filepath.Rel(base, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("object %s/%s escapes %s", bucket, key, s.basePath)
	}
	return full, nil
}

func (s *fileStorage) Get(_ context.Context, bucket, key string) ([]byte, error) {
	fullPath, err := s.fullPath(bucket, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fullPath, err)
	}
	return data, nil
}
