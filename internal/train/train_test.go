package train

import (
	"context"
	"errors"
	"testing"

	"github.com/ChizhovVadim/NeuralDigits/internal/dataset"
)

type recordingModel struct {
	labels []int
	fail   error
}

func (m *recordingModel) Train(inputs, targets []float32) error {
	if m.fail != nil {
		return m.fail
	}
	var label = -1
	for i, v := range targets {
		if v == 0.99 {
			label = i
		}
	}
	m.labels = append(m.labels, label)
	return nil
}

func makeSamples(count int) []dataset.Sample {
	var samples = make([]dataset.Sample, count)
	for i := range samples {
		samples[i] = dataset.Sample{Label: i % dataset.Classes, Pixels: []uint8{uint8(i)}}
	}
	return samples
}

func TestRunKeepsOrder(t *testing.T) {
	var model = &recordingModel{}
	var stats, err = Run(context.Background(), model, makeSamples(25), Options{Epochs: 2, LogEvery: 10})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Samples != 50 || len(model.labels) != 50 {
		t.Fatalf("stats=%+v trained=%v", stats, len(model.labels))
	}
	for i, label := range model.labels {
		if label != (i%25)%dataset.Classes {
			t.Fatalf("step %v trained label %v", i, label)
		}
	}
}

func TestRunShuffleIsSeeded(t *testing.T) {
	var a, b = &recordingModel{}, &recordingModel{}
	var options = Options{Epochs: 3, Shuffle: true, Seed: 5}
	if _, err := Run(context.Background(), a, makeSamples(40), options); err != nil {
		t.Fatal(err)
	}
	if _, err := Run(context.Background(), b, makeSamples(40), options); err != nil {
		t.Fatal(err)
	}
	if len(a.labels) != 120 {
		t.Fatalf("trained %v samples", len(a.labels))
	}
	for i := range a.labels {
		if a.labels[i] != b.labels[i] {
			t.Fatalf("shuffle with equal seeds differs at %v", i)
		}
	}
}

func TestRunStopsOnError(t *testing.T) {
	var errTrain = errors.New("train failed")
	var model = &recordingModel{fail: errTrain}
	var stats, err = Run(context.Background(), model, makeSamples(3), Options{})
	if !errors.Is(err, errTrain) || stats.Samples != 0 {
		t.Fatalf("stats=%+v err=%v", stats, err)
	}
}

func TestRunCanceled(t *testing.T) {
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	var model = &recordingModel{}
	var _, err = Run(ctx, model, makeSamples(3), Options{})
	if !errors.Is(err, context.Canceled) || len(model.labels) != 0 {
		t.Fatalf("err=%v trained=%v", err, len(model.labels))
	}
}
