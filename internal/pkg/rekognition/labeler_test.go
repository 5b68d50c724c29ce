package rekognition

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*rekognition.DetectLabelsOutput)
	return out, args.Error(1)
}

func TestDetectLabelsReturnsServiceLabels(t *testing.T) {
	tests := []struct {
		name   string
		labels []types.Label
	}{
		{name: "none", labels: []types.Label{}},
		{name: "one", labels: []types.Label{{Name: aws.String("Person"), Confidence: aws.Float32(99)}}},
		{
			name: "several",
			labels: []types.Label{
				{Name: aws.String("Person"), Confidence: aws.Float32(99)},
				{Name: aws.String("Car"), Confidence: aws.Float32(88.5)},
				{Name: aws.String("Tree"), Confidence: aws.Float32(51)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockClient)
			image := []byte{0xff, 0xd8, 0xff}
			client.On("DetectLabels", mock.Anything, mock.MatchedBy(func(in *rekognition.DetectLabelsInput) bool {
				return assert.ObjectsAreEqual(image, in.Image.Bytes) &&
					aws.ToInt32(in.MaxLabels) == 10 &&
					aws.ToFloat32(in.MinConfidence) == 50
			})).Return(&rekognition.DetectLabelsOutput{Labels: tt.labels}, nil).Once()

			got, err := NewLabeler(client, 0, 0).DetectLabels(context.Background(), image, "test.jpg")
			require.NoError(t, err)
			assert.Equal(t, tt.labels, got)
			client.AssertExpectations(t)
		})
	}
}

func TestDetectLabelsCustomLimits(t *testing.T) {
	client := new(mockClient)
	client.On("DetectLabels", mock.Anything, mock.MatchedBy(func(in *rekognition.DetectLabelsInput) bool {
		return aws.ToInt32(in.MaxLabels) == 3 && aws.ToFloat32(in.MinConfidence) == 80
	})).Return(&rekognition.DetectLabelsOutput{}, nil).Once()

	_, err := NewLabeler(client, 3, 80).DetectLabels(context.Background(), nil, "x.jpg")
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestDetectLabelsPropagatesError(t *testing.T) {
	client := new(mockClient)
	boom := errors.New("InvalidImageFormatException")
	client.On("DetectLabels", mock.Anything, mock.Anything).Return(nil, boom).Once()

	got, err := NewLabeler(client, 10, 50).DetectLabels(context.Background(), []byte("not an image"), "bad.jpg")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad.jpg")
	assert.Nil(t, got)
}
