package quality

import (
	"context"
	"fmt"
	"log"

	"github.com/ChizhovVadim/NeuralDigits/internal/dataset"
)

type IQueryer interface {
	Query(inputs []float32) ([]float32, error)
}

type Result struct {
	Tested  int
	Correct int
}

func (r Result) Performance() float64 {
	if r.Tested == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Tested)
}

// ArgMax returns the index of the largest value; the first one wins ties.
// It returns -1 for an empty slice.
func ArgMax(values []float32) int {
	var best = -1
	for i, v := range values {
		if best == -1 || values[best] < v {
			best = i
		}
	}
	return best
}

// Evaluate queries every sample and counts predictions equal to the label.
func Evaluate(ctx context.Context, model IQueryer, samples []dataset.Sample) (Result, error) {
	log.Println("Testing...")

	var result Result
	for i := range samples {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		var sample = &samples[i]
		outputs, err := model.Query(dataset.NormalizePixels(sample.Pixels))
		if err != nil {
			return result, fmt.Errorf("sample %v: %w", i, err)
		}
		if ArgMax(outputs) == sample.Label {
			result.Correct++
		}
		result.Tested++
	}

	log.Printf("Tested %v with %v correct recognitions\n", result.Tested, result.Correct)
	log.Printf("Network performance is %v\n", result.Performance())
	return result, nil
}
