package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Chunk is the half-open index range [From, To).
type Chunk struct {
	From int
	To   int
}

func (c Chunk) Len() int { return c.To - c.From }

// Split divides [0, length) into at most parts contiguous chunks.
// Every chunk except possibly a lone one holds at least minSize items,
// and chunk sizes differ by at most one.
func Split(length, parts, minSize int) []Chunk {
	if length <= 0 {
		return nil
	}
	if minSize < 1 {
		minSize = 1
	}
	if maxParts := length / minSize; parts > maxParts {
		parts = maxParts
	}
	if parts < 1 {
		parts = 1
	}
	var result = make([]Chunk, 0, parts)
	var size, rest = length / parts, length % parts
	var from = 0
	for i := 0; i < parts; i++ {
		var to = from + size
		if i < rest {
			to++
		}
		result = append(result, Chunk{From: from, To: to})
		from = to
	}
	return result
}

// ForChunks calls body once per chunk and returns when all calls are done.
// A single chunk is processed on the calling goroutine.
func ForChunks(chunks []Chunk, body func(from, to int)) {
	switch len(chunks) {
	case 0:
		return
	case 1:
		body(chunks[0].From, chunks[0].To)
		return
	}
	var g errgroup.Group
	for _, chunk := range chunks {
		var chunk = chunk
		g.Go(func() error {
			body(chunk.From, chunk.To)
			return nil
		})
	}
	// body has no error result, so Wait always returns nil.
	_ = g.Wait()
}

// For splits [0, length) across Threads() workers.
func For(length, minSize int, body func(from, to int)) {
	ForChunks(Split(length, Threads(), minSize), body)
}

// Threads is the number of workers used by For.
func Threads() int {
	return runtime.GOMAXPROCS(0)
}
