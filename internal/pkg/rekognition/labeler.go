// Package rekognition wraps label detection for in-memory images.
package rekognition

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxLabels     int32   = 10
	DefaultMinConfidence float32 = 50
)

type Client interface {
	DetectLabels(
		ctx context.Context,
		params *rekognition.DetectLabelsInput,
		optFns ...func(*rekognition.Options),
	) (*rekognition.DetectLabelsOutput, error)
}

type Labeler struct {
	client        Client
	maxLabels     int32
	minConfidence float32
}

// NewLabeler falls back to the default limits for non-positive values.
func NewLabeler(client Client, maxLabels int32, minConfidence float32) *Labeler {
	if maxLabels <= 0 {
		maxLabels = DefaultMaxLabels
	}
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Labeler{client: client, maxLabels: maxLabels, minConfidence: minConfidence}
}

// DetectLabels returns the labels exactly as the service reported them.
func (l *Labeler) DetectLabels(ctx context.Context, image []byte, imageName string) ([]types.Label, error) {
	out, err := l.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(l.maxLabels),
		MinConfidence: aws.Float32(l.minConfidence),
	})
	if err != nil {
		logrus.WithError(err).Errorf("Couldn't detect labels in %s.", imageName)
		return nil, fmt.Errorf("detect labels in %s: %w", imageName, err)
	}

	logrus.Infof("Detected %d labels.", len(out.Labels))
	return out.Labels, nil
}
