package service

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/ds124wfegd/visionpipe/internal/database"
	"github.com/ds124wfegd/visionpipe/internal/entity"
)

type LabelDetector interface {
	DetectLabels(ctx context.Context, image []byte, imageName string) ([]types.Label, error)
}

type LabelService interface {
	// LabelImage detects, normalizes and stores labels under imageID.
	LabelImage(ctx context.Context, imageID string, image []byte) (*entity.LabelResult, error)
	GetResult(ctx context.Context, imageID string) (*entity.LabelResult, error)
}

type labelService struct {
	detector LabelDetector
	repo     database.ResultRepository
}

func NewLabelService(detector LabelDetector, repo database.ResultRepository) LabelService {
	return &labelService{
		detector: detector,
		repo:     repo,
	}
}
