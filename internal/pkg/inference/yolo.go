package inference

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ds124wfegd/visionpipe/internal/entity"
)

// Detector decodes YOLOv8-style heads: output [1, 4+C, N] with rows
// cx, cy, w, h followed by one score per class.
type Detector struct {
	model      runner
	names      []string
	size       int
	confidence float32
	iou        float32
}

func NewDetector(model runner, names []string, size int, confidence, iou float32) *Detector {
	return &Detector{model: model, names: names, size: size, confidence: confidence, iou: iou}
}

func (d *Detector) Detect(img image.Image) ([]entity.Detection, error) {
	boxed, lb := LetterboxImage(img, d.size)
	input := ToCHW(boxed, noMean, noStd)

	data, shape, err := d.model.Run(input, []int64{1, 3, int64(d.size), int64(d.size)})
	if err != nil {
		return nil, err
	}

	candidates, err := DecodeYOLO(data, shape, d.confidence, d.names)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	detections := NMS(candidates, d.iou)
	for i := range detections {
		detections[i].Box = lb.ToSource(detections[i].Box, b.Dx(), b.Dy())
	}
	return detections, nil
}

// DecodeYOLO keeps every anchor whose best class score reaches conf.
// Boxes stay in model input coordinates.
func DecodeYOLO(data []float32, shape []int64, conf float32, names []string) ([]entity.Detection, error) {
	if len(shape) != 3 || shape[0] != 1 || shape[1] <= 4 {
		return nil, fmt.Errorf("%w: expected [1, 4+C, N], got %v", entity.ErrModelOutput, shape)
	}
	rows, n := int(shape[1]), int(shape[2])
	if len(data) != rows*n {
		return nil, fmt.Errorf("%w: %d values for shape %v", entity.ErrModelOutput, len(data), shape)
	}
	classes := rows - 4

	var detections []entity.Detection
	for i := 0; i < n; i++ {
		best, bestScore := 0, data[4*n+i]
		for c := 1; c < classes; c++ {
			if s := data[(4+c)*n+i]; s > bestScore {
				best, bestScore = c, s
			}
		}
		if bestScore < conf {
			continue
		}

		cx, cy := data[i], data[n+i]
		w, h := data[2*n+i], data[3*n+i]
		detections = append(detections, entity.Detection{
			Name:       className(names, best),
			Class:      best,
			Confidence: bestScore,
			Box: entity.Box{
				X1: cx - w/2,
				Y1: cy - h/2,
				X2: cx + w/2,
				Y2: cy + h/2,
			},
		})
	}
	return detections, nil
}

// NMS suppresses overlapping boxes of the same class and returns the
// survivors sorted by confidence.
func NMS(detections []entity.Detection, iouThreshold float32) []entity.Detection {
	sorted := make([]entity.Detection, len(detections))
	copy(sorted, detections)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Confidence > sorted[b].Confidence
	})

	kept := make([]entity.Detection, 0, len(sorted))
	suppressed := make([]bool, len(sorted))
	for i := range sorted {
		if suppressed[i] {
			continue
		}
		kept = append(kept, sorted[i])
		for j := i + 1; j < len(sorted); j++ {
			if suppressed[j] || sorted[j].Class != sorted[i].Class {
				continue
			}
			if IoU(sorted[i].Box, sorted[j].Box) > iouThreshold {
				suppressed[j] = true
			}
		}
	}
	return kept
}

func IoU(a, b entity.Box) float32 {
	inter := entity.Box{
		X1: max(a.X1, b.X1),
		Y1: max(a.Y1, b.Y1),
		X2: min(a.X2, b.X2),
		Y2: min(a.Y2, b.Y2),
	}.Area()
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func className(names []string, class int) string {
	if class < len(names) {
		return names[class]
	}
	return strconv.Itoa(class)
}

// ParseNames reads one class name per line.
func ParseNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read class names: %w", err)
	}
	return names, nil
}

// LoadNames falls back to the COCO classes when path is empty.
func LoadNames(path string) ([]string, error) {
	if path == "" {
		return COCONames, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class names %s: %w", path, err)
	}
	defer f.Close()
	return ParseNames(f)
}
