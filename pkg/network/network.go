// Package network implements a three layer perceptron (input, hidden, output)
// with sigmoid activations, trained online by backpropagation.
package network

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ChizhovVadim/NeuralDigits/internal/math"
	"github.com/ChizhovVadim/NeuralDigits/pkg/matrix"
)

var ErrInvalidConfiguration = errors.New("network: invalid configuration")

// Network owns its two weight matrices; Train replaces them after every sample.
// A Network must not be used from several goroutines at once.
type Network struct {
	inputSize     int
	hiddenSize    int
	outputSize    int
	learningRate  float32
	inputWeights  *matrix.Matrix // hiddenSize x inputSize
	outputWeights *matrix.Matrix // outputSize x hiddenSize
}

// New creates a network with weights drawn uniformly from [-0.5, 0.5)
// by a generator seeded with seed and owned by this call.
func New(inputSize, hiddenSize, outputSize int, learningRate float32, seed int64) (*Network, error) {
	if inputSize <= 0 || hiddenSize <= 0 || outputSize <= 0 {
		return nil, fmt.Errorf("%w: layer sizes %v-%v-%v",
			ErrInvalidConfiguration, inputSize, hiddenSize, outputSize)
	}
	if !(learningRate > 0) {
		return nil, fmt.Errorf("%w: learning rate %v", ErrInvalidConfiguration, learningRate)
	}
	var rnd = rand.New(rand.NewSource(seed))
	return &Network{
		inputSize:     inputSize,
		hiddenSize:    hiddenSize,
		outputSize:    outputSize,
		learningRate:  learningRate,
		inputWeights:  randomWeights(rnd, hiddenSize, inputSize),
		outputWeights: randomWeights(rnd, outputSize, hiddenSize),
	}, nil
}

func randomWeights(rnd *rand.Rand, rows, cols int) *matrix.Matrix {
	var m = matrix.New(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, rnd.Float32()-0.5)
		}
	}
	return m
}

func (n *Network) InputSize() int        { return n.inputSize }
func (n *Network) HiddenSize() int       { return n.hiddenSize }
func (n *Network) OutputSize() int       { return n.outputSize }
func (n *Network) LearningRate() float32 { return n.learningRate }

// Weights returns copies of the input-to-hidden and hidden-to-output weights.
func (n *Network) Weights() (input, output *matrix.Matrix) {
	return n.inputWeights.Clone(), n.outputWeights.Clone()
}

// Query returns the output layer activations for inputs.
func (n *Network) Query(inputs []float32) ([]float32, error) {
	if err := n.checkInputs(inputs); err != nil {
		return nil, err
	}
	var _, output, err = n.forward(matrix.FromColumnVector(inputs))
	if err != nil {
		return nil, err
	}
	return matrix.Flatten(output), nil
}

// Train performs one backpropagation step towards targets.
func (n *Network) Train(inputs, targets []float32) error {
	if err := n.checkInputs(inputs); err != nil {
		return err
	}
	if len(targets) != n.outputSize {
		return fmt.Errorf("%w: %v targets for %v outputs",
			matrix.ErrShapeMismatch, len(targets), n.outputSize)
	}

	var x = matrix.FromColumnVector(inputs)
	hidden, output, err := n.forward(x)
	if err != nil {
		return err
	}

	outputErrors, err := matrix.Subtract(matrix.FromColumnVector(targets), output)
	if err != nil {
		return err
	}
	hiddenErrors, err := matrix.Multiply(matrix.Transpose(n.outputWeights), outputErrors)
	if err != nil {
		return err
	}

	// Both deltas are taken from the weights of the forward pass.
	outputDelta, err := n.weightDelta(outputErrors, output, hidden)
	if err != nil {
		return err
	}
	inputDelta, err := n.weightDelta(hiddenErrors, hidden, x)
	if err != nil {
		return err
	}

	outputWeights, err := matrix.Add(n.outputWeights, outputDelta)
	if err != nil {
		return err
	}
	inputWeights, err := matrix.Add(n.inputWeights, inputDelta)
	if err != nil {
		return err
	}
	n.outputWeights = outputWeights
	n.inputWeights = inputWeights
	return nil
}

func (n *Network) checkInputs(inputs []float32) error {
	if len(inputs) != n.inputSize {
		return fmt.Errorf("%w: %v inputs for %v input nodes",
			matrix.ErrShapeMismatch, len(inputs), n.inputSize)
	}
	return nil
}

func (n *Network) forward(x *matrix.Matrix) (hidden, output *matrix.Matrix, err error) {
	hidden, err = activate(n.inputWeights, x)
	if err != nil {
		return nil, nil, err
	}
	output, err = activate(n.outputWeights, hidden)
	if err != nil {
		return nil, nil, err
	}
	return hidden, output, nil
}

func activate(weights, input *matrix.Matrix) (*matrix.Matrix, error) {
	var sums, err = matrix.Multiply(weights, input)
	if err != nil {
		return nil, err
	}
	return matrix.Apply(sums, math.Sigmoid), nil
}

// weightDelta is lr * (layerErrors ⊙ activations ⊙ (1 - activations)) x transpose(layerInputs).
func (n *Network) weightDelta(layerErrors, activations, layerInputs *matrix.Matrix) (*matrix.Matrix, error) {
	gradient, err := matrix.Hadamard(layerErrors, activations)
	if err != nil {
		return nil, err
	}
	gradient, err = matrix.Hadamard(gradient, matrix.ScalarSubtract(1, activations))
	if err != nil {
		return nil, err
	}
	delta, err := matrix.Multiply(gradient, matrix.Transpose(layerInputs))
	if err != nil {
		return nil, err
	}
	return matrix.Scale(delta, n.learningRate), nil
}
