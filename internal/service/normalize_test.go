package service

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/ds124wfegd/visionpipe/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func label(name string, confidence float32, categories ...string) types.Label {
	l := types.Label{Name: aws.String(name), Confidence: aws.Float32(confidence)}
	for _, c := range categories {
		l.Categories = append(l.Categories, types.LabelCategory{Name: aws.String(c)})
	}
	return l
}

func TestNormalizeLabelsDocument(t *testing.T) {
	result := NormalizeLabels("test.jpg", []types.Label{
		label("Person", 99, "People"),
		label("Car", 88.5, "Vehicle"),
	})

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"image_id":"test.jpg","categories":["People","Vehicle"],"tags":[{"name":"Person","confidence":99},{"name":"Car","confidence":88.5}]}`,
		string(data))
}

func TestNormalizeLabelsKeepsReportedConfidence(t *testing.T) {
	result := NormalizeLabels("x.jpg", []types.Label{
		label("Person", 99.87654),
		label("Lamp", 51.3),
	})

	assert.Equal(t, 99.87654, result.Tags[0].Confidence)
	assert.Equal(t, 51.3, result.Tags[1].Confidence)

	data, err := json.Marshal(result.Tags)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Person","confidence":99.87654},{"name":"Lamp","confidence":51.3}]`, string(data))
}

func TestNormalizeLabels(t *testing.T) {
	tests := []struct {
		name       string
		labels     []types.Label
		categories []string
		tags       []entity.Tag
	}{
		{
			name:       "no labels",
			labels:     nil,
			categories: []string{},
			tags:       []entity.Tag{},
		},
		{
			name: "duplicate categories keep first seen order",
			labels: []types.Label{
				label("Car", 90, "Vehicle", "Transport"),
				label("Wheel", 80, "Vehicle Parts", "Vehicle"),
				label("Bus", 70, "Transport"),
			},
			categories: []string{"Vehicle", "Transport", "Vehicle Parts"},
			tags: []entity.Tag{
				{Name: "Car", Confidence: 90},
				{Name: "Wheel", Confidence: 80},
				{Name: "Bus", Confidence: 70},
			},
		},
		{
			name: "labels without categories still produce tags",
			labels: []types.Label{
				label("Sky", 60),
				{Name: aws.String("Cloud"), Confidence: aws.Float32(55), Categories: []types.LabelCategory{{}, {Name: aws.String("")}}},
			},
			categories: []string{},
			tags: []entity.Tag{
				{Name: "Sky", Confidence: 60},
				{Name: "Cloud", Confidence: 55},
			},
		},
		{
			name:       "missing name and confidence become zero values",
			labels:     []types.Label{{}},
			categories: []string{},
			tags:       []entity.Tag{{Name: "", Confidence: 0}},
		},
		{
			name: "scores are not validated",
			labels: []types.Label{
				label("Odd", 150),
				label("Odd", -3),
			},
			categories: []string{},
			tags: []entity.Tag{
				{Name: "Odd", Confidence: 150},
				{Name: "Odd", Confidence: -3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeLabels("img.png", tt.labels)
			assert.Equal(t, "img.png", result.ImageID)
			assert.Equal(t, tt.categories, result.Categories)
			assert.Equal(t, tt.tags, result.Tags)
		})
	}
}
