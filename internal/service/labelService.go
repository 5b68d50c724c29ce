package service

import (
	"context"
	"fmt"

	"github.com/ds124wfegd/visionpipe/internal/entity"
)

func (s *labelService) LabelImage(ctx context.Context, imageID string, image []byte) (*entity.LabelResult, error) {
	labels, err := s.detector.DetectLabels(ctx, image, imageID)
	if err != nil {
		return nil, err
	}

	result := NormalizeLabels(imageID, labels)
	if err := s.repo.Save(ctx, imageID, result); err != nil {
		return nil, fmt.Errorf("%w %s: %w", entity.ErrSaveResult, imageID, err)
	}
	return result, nil
}

func (s *labelService) GetResult(ctx context.Context, imageID string) (*entity.LabelResult, error) {
	return s.repo.FindByID(ctx, imageID)
}
