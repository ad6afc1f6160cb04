package matrix

import "github.com/ChizhovVadim/NeuralDigits/internal/parallel"

func Add(a, b *Matrix) (*Matrix, error) {
	return zip("add", a, b, func(x, y float32) float32 { return x + y })
}

func Subtract(a, b *Matrix) (*Matrix, error) {
	return zip("subtract", a, b, func(x, y float32) float32 { return x - y })
}

// Hadamard is the elementwise product.
func Hadamard(a, b *Matrix) (*Matrix, error) {
	return zip("hadamard", a, b, func(x, y float32) float32 { return x * y })
}

func AddScalar(a *Matrix, s float32) *Matrix {
	return Apply(a, func(x float32) float32 { return x + s })
}

// SubtractScalar returns a - s.
func SubtractScalar(a *Matrix, s float32) *Matrix {
	return Apply(a, func(x float32) float32 { return x - s })
}

// ScalarSubtract returns s - a.
func ScalarSubtract(s float32, a *Matrix) *Matrix {
	return Apply(a, func(x float32) float32 { return s - x })
}

func Scale(a *Matrix, s float32) *Matrix {
	return Apply(a, func(x float32) float32 { return x * s })
}

// Apply maps fn over every entry.
func Apply(a *Matrix, fn func(float32) float32) *Matrix {
	var result = New(a.rows, a.cols)
	for i, x := range a.data {
		result.data[i] = fn(x)
	}
	return result
}

func Transpose(a *Matrix) *Matrix {
	var result = New(a.cols, a.rows)
	for i := 0; i < a.rows; i++ {
		var row = a.data[i*a.cols : (i+1)*a.cols]
		for j, x := range row {
			result.data[j*a.rows+i] = x
		}
	}
	return result
}

// Multiply returns the matrix product a x b.
// Output rows are computed in parallel when there are at least
// ParallelRowThreshold of them; each cell is summed in the same order either way.
func Multiply(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, shapeError("multiply", a, b)
	}
	var result = New(a.rows, b.cols)
	if a.rows < ParallelRowThreshold {
		multiplyRows(result, a, b, 0, a.rows)
		return result, nil
	}
	parallel.For(a.rows, minRowsPerWorker, func(from, to int) {
		multiplyRows(result, a, b, from, to)
	})
	return result, nil
}

// multiplyRows writes rows [from, to) of result.
func multiplyRows(result, a, b *Matrix, from, to int) {
	var inner, cols = a.cols, b.cols
	for i := from; i < to; i++ {
		var left = a.data[i*inner : (i+1)*inner]
		var out = result.data[i*cols : (i+1)*cols]
		for j := range out {
			var sum float32
			for k, x := range left {
				sum += x * b.data[k*cols+j]
			}
			out[j] = sum
		}
	}
}

func zip(op string, a, b *Matrix, fn func(x, y float32) float32) (*Matrix, error) {
	if !sameShape(a, b) {
		return nil, shapeError(op, a, b)
	}
	var result = New(a.rows, a.cols)
	for i := range result.data {
		result.data[i] = fn(a.data[i], b.data[i])
	}
	return result, nil
}
