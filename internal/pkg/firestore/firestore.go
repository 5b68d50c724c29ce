// Package firestore opens the document database client used for label results.
package firestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cloud.google.com/go/firestore"
	"github.com/ds124wfegd/visionpipe/config"
	"github.com/ds124wfegd/visionpipe/internal/entity"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// CheckCredentials fails when the configured service account file is absent.
// An empty path means application default credentials.
func CheckCredentials(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	logrus.Errorf("Firebase credentials file not found: %s", absPath)
	return fmt.Errorf("%w: %s", entity.ErrCredentialsNotFound, absPath)
}

func NewClient(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	if err := CheckCredentials(cfg.CredentialsPath); err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		logrus.WithError(err).Error("Firestore initialization failed")
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	logrus.WithField("collection", cfg.Collection).Info("Firestore client initialized")
	return client, nil
}
