package inference

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/visionpipe/internal/entity"
)

var (
	ImageNetMean = [3]float32{0.485, 0.456, 0.406}
	ImageNetStd  = [3]float32{0.229, 0.224, 0.225}

	// identity normalization, pixels only scaled to [0,1]
	noMean = [3]float32{0, 0, 0}
	noStd  = [3]float32{1, 1, 1}
)

var letterboxFill = color.NRGBA{R: 114, G: 114, B: 114, A: 255}

// LoadImage opens an image file and applies its EXIF orientation.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes an encoded image held in memory, rejecting empty input.
func DecodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, entity.ErrEmptyImage
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ToCHW converts an image into a planar RGB tensor scaled to [0,1]
// and normalized per channel as (v - mean) / std.
func ToCHW(img *image.NRGBA, mean, std [3]float32) []float32 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	plane := w * h
	out := make([]float32, 3*plane)

	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			px := row[x*4:]
			i := y*w + x
			for c := 0; c < 3; c++ {
				v := float32(px[c]) / 255
				out[c*plane+i] = (v - mean[c]) / std[c]
			}
		}
	}
	return out
}

// Resize stretches img to size x size with bilinear filtering.
func Resize(img image.Image, size int) *image.NRGBA {
	return imaging.Resize(img, size, size, imaging.Linear)
}

// Letterbox records how an image was fitted into a square model input.
type Letterbox struct {
	Scale float32
	PadX  float32
	PadY  float32
}

// ToSource maps a box from model input coordinates back to the source image.
func (l Letterbox) ToSource(b entity.Box, srcW, srcH int) entity.Box {
	return entity.Box{
		X1: clamp((b.X1-l.PadX)/l.Scale, 0, float32(srcW)),
		Y1: clamp((b.Y1-l.PadY)/l.Scale, 0, float32(srcH)),
		X2: clamp((b.X2-l.PadX)/l.Scale, 0, float32(srcW)),
		Y2: clamp((b.Y2-l.PadY)/l.Scale, 0, float32(srcH)),
	}
}

// LetterboxImage resizes img to fit size x size keeping its aspect ratio
// and centers it on a gray canvas.
func LetterboxImage(img image.Image, size int) (*image.NRGBA, Letterbox) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))
	padX := (size - nw) / 2
	padY := (size - nh) / 2

	canvas := imaging.New(size, size, letterboxFill)
	resized := imaging.Resize(img, nw, nh, imaging.Linear)
	canvas = imaging.Paste(canvas, resized, image.Pt(padX, padY))

	return canvas, Letterbox{
		Scale: float32(scale),
		PadX:  float32(padX),
		PadY:  float32(padY),
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
