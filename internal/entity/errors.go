package entity

import "errors"

var (
	// Notification errors
	ErrInvalidNotification = errors.New("invalid notification message")
	ErrMissingObject       = errors.New("bucket or object key not found in notification")

	// Result store errors
	ErrResultNotFound = errors.New("label result not found")
	ErrSaveResult     = errors.New("failed to save label result")

	// Startup errors
	ErrCredentialsNotFound = errors.New("credentials file not found")
	ErrQueueURLRequired    = errors.New("queue url is required")
	ErrUnknownBackend      = errors.New("unknown backend")
	ErrMediaURIRequired    = errors.New("media uri is required")

	// Inference errors
	ErrEmptyImage  = errors.New("image is empty")
	ErrModelOutput = errors.New("unexpected model output")
)
