package dataset

import (
	"errors"
)

const (
	ImageSize = 28
	Pixels    = ImageSize * ImageSize
	Classes   = 10
)

var ErrBadRow = errors.New("dataset: bad row")

// Sample is one labelled image with raw 0..255 channel intensities.
type Sample struct {
	Label  int
	Pixels []uint8
}

// Normalize maps a channel intensity into [0.01, 1.0].
func Normalize(v uint8) float32 {
	return float32(v)/255*0.99 + 0.01
}

func NormalizePixels(pixels []uint8) []float32 {
	var result = make([]float32, len(pixels))
	for i, v := range pixels {
		result[i] = Normalize(v)
	}
	return result
}

// Targets returns 0.99 at label and 0.01 elsewhere.
func Targets(label, classes int) []float32 {
	var result = make([]float32, classes)
	for i := range result {
		result[i] = 0.01
	}
	if label >= 0 && label < classes {
		result[label] = 0.99
	}
	return result
}
