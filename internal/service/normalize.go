package service

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/ds124wfegd/visionpipe/internal/entity"
)

// NormalizeLabels flattens detected labels into the stored document.
// Categories keep first-seen order without duplicates; tags mirror the input one to one.
func NormalizeLabels(imageID string, labels []types.Label) *entity.LabelResult {
	result := &entity.LabelResult{
		ImageID:    imageID,
		Categories: []string{},
		Tags:       make([]entity.Tag, 0, len(labels)),
	}

	seen := make(map[string]struct{})
	for _, label := range labels {
		for _, category := range label.Categories {
			name := aws.ToString(category.Name)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			result.Categories = append(result.Categories, name)
		}
	}

	for _, label := range labels {
		result.Tags = append(result.Tags, entity.Tag{
			Name:       aws.ToString(label.Name),
			Confidence: confidence(label.Confidence),
		})
	}

	return result
}

// confidence keeps the decimal Rekognition reported instead of the widened float32 bits.
func confidence(c *float32) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(aws.ToFloat32(c)), 'g', -1, 32), 64)
	if err != nil {
		return float64(aws.ToFloat32(c))
	}
	return v
}
