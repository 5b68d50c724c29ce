package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/ds124wfegd/visionpipe/internal/entity"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreRepository(client *firestore.Client, collection string) ResultRepository {
	return &firestoreRepository{client: client, collection: collection}
}

func (r *firestoreRepository) Save(ctx context.Context, imageID string, result *entity.LabelResult) error {
	_, err := r.client.Collection(r.collection).Doc(imageID).Set(ctx, result)
	if err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", r.collection, imageID, err)
	}
	return nil
}

func (r *firestoreRepository) FindByID(ctx context.Context, imageID string) (*entity.LabelResult, error) {
	snap, err := r.client.Collection(r.collection).Doc(imageID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, entity.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", r.collection, imageID, err)
	}

	var result entity.LabelResult
	if err := snap.DataTo(&result); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", r.collection, imageID, err)
	}
	return &result, nil
}

func (r *firestoreRepository) Close() error {
	return r.client.Close()
}
