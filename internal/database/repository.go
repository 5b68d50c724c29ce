package database

import (
	"context"

	"github.com/ds124wfegd/visionpipe/internal/entity"
)

// ResultRepository stores one label document per image id. Save overwrites.
type ResultRepository interface {
	Save(ctx context.Context, imageID string, result *entity.LabelResult) error
	FindByID(ctx context.Context, imageID string) (*entity.LabelResult, error)
	Close() error
}
