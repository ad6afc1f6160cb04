package train

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/ChizhovVadim/NeuralDigits/internal/dataset"
)

type ITrainer interface {
	Train(inputs, targets []float32) error
}

type Options struct {
	Epochs   int
	Classes  int
	Shuffle  bool
	Seed     int64
	LogEvery int
}

type Stats struct {
	Samples int
	Elapsed time.Duration
}

// Run trains model online, one sample at a time, in dataset order
// unless Shuffle is set.
func Run(ctx context.Context, model ITrainer, samples []dataset.Sample, options Options) (Stats, error) {
	if options.Epochs <= 0 {
		options.Epochs = 1
	}
	if options.Classes <= 0 {
		options.Classes = dataset.Classes
	}

	log.Printf("Training on %v samples...\n", len(samples))

	var order = make([]int, len(samples))
	for i := range order {
		order[i] = i
	}
	var rnd = rand.New(rand.NewSource(options.Seed))

	var stats Stats
	var start = time.Now()
	for epoch := 1; epoch <= options.Epochs; epoch++ {
		if options.Shuffle {
			shuffle(rnd, order)
		}
		for i, index := range order {
			if err := ctx.Err(); err != nil {
				stats.Elapsed = time.Since(start)
				return stats, err
			}
			var sample = &samples[index]
			var err = model.Train(dataset.NormalizePixels(sample.Pixels), dataset.Targets(sample.Label, options.Classes))
			if err != nil {
				stats.Elapsed = time.Since(start)
				return stats, fmt.Errorf("sample %v: %w", index, err)
			}
			stats.Samples++
			if options.LogEvery > 0 && (i+1)%options.LogEvery == 0 {
				log.Println("train",
					"epoch", epoch,
					"samples", i+1,
					"elapsed", time.Since(start).Round(time.Millisecond))
			}
		}
		log.Printf("Finished Epoch %v\n", epoch)
	}
	stats.Elapsed = time.Since(start)

	log.Printf("Trained for %v seconds\n", stats.Elapsed.Seconds())
	return stats, nil
}

func shuffle(rnd *rand.Rand, order []int) {
	rnd.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
}
