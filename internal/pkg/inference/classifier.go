package inference

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ds124wfegd/visionpipe/internal/entity"
)

// Classifier is a scene classifier over a fixed category list.
type Classifier struct {
	model      runner
	categories []string
	size       int
	topK       int
}

func NewClassifier(model runner, categories []string, size, topK int) *Classifier {
	return &Classifier{model: model, categories: categories, size: size, topK: topK}
}

func (c *Classifier) Classify(img image.Image) ([]entity.Prediction, error) {
	input := ToCHW(Resize(img, c.size), ImageNetMean, ImageNetStd)

	logits, _, err := c.model.Run(input, []int64{1, 3, int64(c.size), int64(c.size)})
	if err != nil {
		return nil, err
	}
	if len(logits) != len(c.categories) {
		return nil, fmt.Errorf("%w: %d scores for %d categories", entity.ErrModelOutput, len(logits), len(c.categories))
	}

	return TopK(Softmax(logits), c.topK, c.categories), nil
}

func Softmax(logits []float32) []float32 {
	if len(logits) == 0 {
		return nil
	}

	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}

	probs := make([]float32, len(logits))
	var sum float64
	for i, v := range logits {
		e := math.Exp(float64(v - maxLogit))
		probs[i] = float32(e)
		sum += e
	}
	for i := range probs {
		probs[i] = float32(float64(probs[i]) / sum)
	}
	return probs
}

// TopK returns the k highest scores, best first. Ties keep the lower index first.
func TopK(scores []float32, k int, labels []string) []entity.Prediction {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	if k > len(idx) {
		k = len(idx)
	}
	if k < 0 {
		k = 0
	}

	predictions := make([]entity.Prediction, 0, k)
	for _, i := range idx[:k] {
		p := entity.Prediction{Index: i, Score: scores[i]}
		if i < len(labels) {
			p.Label = labels[i]
		}
		predictions = append(predictions, p)
	}
	return predictions
}

// ParseCategories reads lines like "/a/airfield 0" and keeps "airfield":
// the first field without its three-character prefix.
func ParseCategories(r io.Reader) ([]string, error) {
	var categories []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		name := strings.Fields(line)[0]
		if len(name) > 3 {
			name = name[3:]
		} else {
			name = ""
		}
		categories = append(categories, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return categories, nil
}

func LoadCategories(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open categories %s: %w", path, err)
	}
	defer f.Close()
	return ParseCategories(f)
}
