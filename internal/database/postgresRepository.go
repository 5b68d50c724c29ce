package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ds124wfegd/visionpipe/internal/entity"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) ResultRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Save(ctx context.Context, imageID string, result *entity.LabelResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result %s: %w", imageID, err)
	}

	query := `
		INSERT INTO label_results (image_id, document)
		VALUES ($1, $2)
		ON CONFLICT (image_id) DO UPDATE
		SET document = EXCLUDED.document, updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, imageID, data); err != nil {
		return fmt.Errorf("failed to save result %s: %w", imageID, err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, imageID string) (*entity.LabelResult, error) {
	query := `SELECT document FROM label_results WHERE image_id = $1`

	var data []byte
	err := r.db.QueryRowContext(ctx, query, imageID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result %s: %w", imageID, err)
	}

	var result entity.LabelResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result %s: %w", imageID, err)
	}
	return &result, nil
}

func (r *postgresRepository) Close() error {
	return r.db.Close()
}
