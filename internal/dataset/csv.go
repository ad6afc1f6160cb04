package dataset

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

const linesPerChunk = 512

type rawChunk struct {
	index int
	lines []numberedLine
}

type numberedLine struct {
	number int
	text   string
}

type parsedChunk struct {
	index   int
	lines   []int
	samples []Sample
}

// LoadCSV reads rows "label,p0,p1,...". Empty fields are skipped, rows keep file order.
// limit <= 0 loads every row.
func LoadCSV(ctx context.Context, path string, threads, limit int) ([]Sample, error) {
	log.Println("load dataset started",
		"path", path)

	if threads < 1 {
		threads = 1
	}

	g, ctx := errgroup.WithContext(ctx)

	var chunks = make(chan rawChunk, threads)
	var results = make(chan parsedChunk, threads)

	g.Go(func() error {
		defer close(chunks)
		return readLines(ctx, path, limit, chunks)
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < threads; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return parseChunks(ctx, chunks, results)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	var samples []Sample
	g.Go(func() error {
		var res, err = collectChunks(results)
		samples = res
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load %v: %w", path, err)
	}
	log.Println("load dataset finished",
		"path", path,
		"samples", len(samples))
	return samples, nil
}

func readLines(ctx context.Context, path string, limit int, chunks chan<- rawChunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	file, err := openFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var scanner = bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var chunk = rawChunk{}
	var lineNumber, count int
	var send = func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunks <- chunk:
		}
		chunk = rawChunk{index: chunk.index + 1}
		return nil
	}

	for scanner.Scan() {
		lineNumber++
		var line = scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if limit > 0 && count >= limit {
			break
		}
		count++
		chunk.lines = append(chunk.lines, numberedLine{number: lineNumber, text: line})
		if len(chunk.lines) == linesPerChunk {
			if err := send(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(chunk.lines) != 0 {
		return send()
	}
	return nil
}

func parseChunks(ctx context.Context, chunks <-chan rawChunk, results chan<- parsedChunk) error {
	for chunk := range chunks {
		var parsed = parsedChunk{
			index:   chunk.index,
			lines:   make([]int, 0, len(chunk.lines)),
			samples: make([]Sample, 0, len(chunk.lines)),
		}
		for _, line := range chunk.lines {
			var sample, err = ParseRow(line.text)
			if err != nil {
				return fmt.Errorf("line %v: %w", line.number, err)
			}
			parsed.lines = append(parsed.lines, line.number)
			parsed.samples = append(parsed.samples, sample)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- parsed:
		}
	}
	return nil
}

// collectChunks restores file order and checks that all rows have the same width.
func collectChunks(results <-chan parsedChunk) ([]Sample, error) {
	var pending = make(map[int]parsedChunk)
	var next int
	var res []Sample
	var width = -1
	for chunk := range results {
		pending[chunk.index] = chunk
		for {
			var ready, ok = pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			for i, sample := range ready.samples {
				if width == -1 {
					width = len(sample.Pixels)
				}
				if len(sample.Pixels) != width {
					return nil, fmt.Errorf("line %v: %w: %v channels, expected %v",
						ready.lines[i], ErrBadRow, len(sample.Pixels), width)
				}
				res = append(res, sample)
			}
		}
	}
	return res, nil
}

// ParseRow parses "label,p0,p1,...".
func ParseRow(line string) (Sample, error) {
	var fields = strings.FieldsFunc(line, func(r rune) bool {
		return r == ','
	})
	if len(fields) < 2 {
		return Sample{}, fmt.Errorf("%w: %v fields", ErrBadRow, len(fields))
	}
	label, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Sample{}, fmt.Errorf("%w: label %q", ErrBadRow, fields[0])
	}
	if label < 0 || label >= Classes {
		return Sample{}, fmt.Errorf("%w: label %v", ErrBadRow, label)
	}
	var pixels = make([]uint8, len(fields)-1)
	for i, field := range fields[1:] {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || v < 0 || v > 255 {
			return Sample{}, fmt.Errorf("%w: channel %v %q", ErrBadRow, i, field)
		}
		pixels[i] = uint8(v)
	}
	return Sample{Label: label, Pixels: pixels}, nil
}
