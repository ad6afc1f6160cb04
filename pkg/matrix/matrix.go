// Package matrix implements a dense row-major float32 matrix.
//
// All operators are pure: they allocate and return a new matrix and never
// modify their operands. Binary operators check shapes before allocating.
package matrix

import (
	"errors"
	"fmt"
)

var (
	ErrShapeMismatch   = errors.New("matrix: shape mismatch")
	ErrIndexOutOfRange = errors.New("matrix: index out of range")
)

// Products with fewer output rows run on the calling goroutine.
const ParallelRowThreshold = 64

// Minimum number of output rows handled by one worker.
const minRowsPerWorker = 16

type Matrix struct {
	rows int
	cols int
	data []float32
}

func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Errorf("%w: new %vx%v", ErrIndexOutOfRange, rows, cols))
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

// FromSlice builds a rows x cols matrix from row-major values.
func FromSlice(rows, cols int, values []float32) (*Matrix, error) {
	if rows < 0 || cols < 0 || len(values) != rows*cols {
		return nil, fmt.Errorf("%w: %v values for %vx%v", ErrShapeMismatch, len(values), rows, cols)
	}
	var m = New(rows, cols)
	copy(m.data, values)
	return m, nil
}

func FromRowVector(values []float32) *Matrix {
	var m = New(1, len(values))
	copy(m.data, values)
	return m
}

func FromColumnVector(values []float32) *Matrix {
	var m = New(len(values), 1)
	copy(m.data, values)
	return m
}

// Flatten returns the entries in row-major order.
func Flatten(m *Matrix) []float32 {
	var result = make([]float32, len(m.data))
	copy(result, m.data)
	return result
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) Get(row, col int) float32 {
	return m.data[m.index(row, col)]
}

func (m *Matrix) Set(row, col int, value float32) {
	m.data[m.index(row, col)] = value
}

func (m *Matrix) Clone() *Matrix {
	var result = New(m.rows, m.cols)
	copy(result.data, m.data)
	return result
}

func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix(%vx%v)", m.rows, m.cols)
}

func (m *Matrix) index(row, col int) int {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Errorf("%w: (%v, %v) in %vx%v", ErrIndexOutOfRange, row, col, m.rows, m.cols))
	}
	return row*m.cols + col
}

func sameShape(a, b *Matrix) bool {
	return a.rows == b.rows && a.cols == b.cols
}

func shapeError(op string, a, b *Matrix) error {
	return fmt.Errorf("%w: %v %vx%v and %vx%v", ErrShapeMismatch, op, a.rows, a.cols, b.rows, b.cols)
}

// Equal reports whether a and b have the same shape and identical entries.
func Equal(a, b *Matrix) bool {
	if !sameShape(a, b) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}
