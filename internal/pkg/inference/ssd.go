package inference

import (
	"image"
)

// SSD runs the single shot detector. Its raw output is not decoded.
type SSD struct {
	model runner
	size  int
}

func NewSSD(model runner, size int) *SSD {
	return &SSD{model: model, size: size}
}

// Forward returns the output tensor shape of one pass.
func (s *SSD) Forward(img image.Image) ([]int64, error) {
	input := ToCHW(Resize(img, s.size), noMean, noStd)

	_, shape, err := s.model.Run(input, []int64{1, 3, int64(s.size), int64(s.size)})
	if err != nil {
		return nil, err
	}
	return shape, nil
}
