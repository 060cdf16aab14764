package service

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestClassifyGrayscalePage(t *testing.T) {
	classifier := NewPageClassifier()

	// Mid-gray text page: every sample is perfectly neutral.
	img := solidImage(200, 200, color.RGBA{R: 120, G: 120, B: 120, A: 255})
	require.False(t, classifier.Classify(img))
}

func TestClassifyColorPage(t *testing.T) {
	classifier := NewPageClassifier()

	img := solidImage(200, 200, color.RGBA{R: 200, G: 40, B: 40, A: 255})
	require.True(t, classifier.Classify(img))
}

func TestClassifyIgnoresWhiteAndBlack(t *testing.T) {
	classifier := NewPageClassifier()

	// Near-white paper and near-black ink are skipped entirely, so a page of
	// only those is grayscale.
	img := solidImage(200, 200, color.RGBA{R: 250, G: 250, B: 250, A: 255})
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 5, G: 5, B: 5, A: 255})
		}
	}
	require.False(t, classifier.Classify(img))
}

func TestClassifySmallColorRegionTipsPage(t *testing.T) {
	classifier := NewPageClassifier()

	// Gray page with a small saturated logo. The color fraction threshold is
	// tiny, so even a 10x10 patch on 200x200 flips the page.
	img := solidImage(200, 200, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}
	require.True(t, classifier.Classify(img))
}

func TestClassifyWithinToleranceIsGray(t *testing.T) {
	classifier := NewPageClassifier()

	// Slight channel imbalance below the tolerance still reads as gray.
	img := solidImage(100, 100, color.RGBA{R: 130, G: 124, B: 120, A: 255})
	require.False(t, classifier.Classify(img))

	// One channel past the tolerance reads as color.
	img = solidImage(100, 100, color.RGBA{R: 140, G: 124, B: 120, A: 255})
	require.True(t, classifier.Classify(img))
}

func TestClassifyNilAndEmpty(t *testing.T) {
	classifier := NewPageClassifier()
	require.False(t, classifier.Classify(nil))
	require.False(t, classifier.Classify(image.NewRGBA(image.Rect(0, 0, 0, 0))))
}
