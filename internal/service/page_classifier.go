package service

import (
	"image"
	"math"
)

const (
	// Channel values above whiteCutoff (or below blackCutoff) on all three
	// channels mark a sample as page background/text and are skipped.
	whiteCutoff = 245
	blackCutoff = 10

	// A sample counts as grayscale when every pairwise channel difference
	// stays within grayTolerance.
	grayTolerance = 12

	// A page is color once more than colorThreshold of its samples are
	// colored. The threshold is deliberately tiny: a single small logo on an
	// otherwise black-and-white page must tip it into the color bucket.
	colorThreshold = 0.001
)

// PageClassifier decides whether a rendered page is printed in color, by
// sampling pixels on a grid whose stride keeps the sample count near 10k
// regardless of resolution.
type PageClassifier struct{}

// NewPageClassifier constructs the classifier.
func NewPageClassifier() *PageClassifier {
	return &PageClassifier{}
}

// Classify reports whether the page image contains color. A nil image is
// classified grayscale; the caller owns logging the decode failure.
func (pc *PageClassifier) Classify(img image.Image) bool {
	if img == nil {
		return false
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return false
	}

	step := int(math.Floor(math.Sqrt(float64(width*height)) / 100))
	if step < 1 {
		step = 1
	}

	sampled := 0
	colored := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			sampled++
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := int(r16 >> 8)
			g := int(g16 >> 8)
			b := int(b16 >> 8)

			if (r > whiteCutoff && g > whiteCutoff && b > whiteCutoff) ||
				(r < blackCutoff && g < blackCutoff && b < blackCutoff) {
				continue
			}
			if abs(r-g) > grayTolerance || abs(g-b) > grayTolerance || abs(r-b) > grayTolerance {
				colored++
			}
		}
	}

	if sampled == 0 {
		return false
	}
	return float64(colored)/float64(sampled) > colorThreshold
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
