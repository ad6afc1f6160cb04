package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestSplitCoversRange(t *testing.T) {
	var tests = []struct {
		length, parts, minSize int
		wantChunks             int
	}{
		{0, 4, 1, 0},
		{1, 4, 1, 1},
		{10, 1, 1, 1},
		{10, 3, 1, 3},
		{10, 4, 4, 2},
		{100, 8, 16, 6},
		{7, 16, 100, 1},
		{5, 0, 0, 1},
	}
	for _, test := range tests {
		var chunks = Split(test.length, test.parts, test.minSize)
		if len(chunks) != test.wantChunks {
			t.Fatalf("Split(%v, %v, %v) chunks=%v want %v",
				test.length, test.parts, test.minSize, len(chunks), test.wantChunks)
		}
		var next = 0
		for _, c := range chunks {
			if c.From != next || c.Len() <= 0 {
				t.Fatalf("Split(%v, %v, %v) bad chunk %+v",
					test.length, test.parts, test.minSize, c)
			}
			next = c.To
		}
		if test.length > 0 && next != test.length {
			t.Fatalf("Split(%v, %v, %v) ends at %v",
				test.length, test.parts, test.minSize, next)
		}
	}
}

func TestSplitBalanced(t *testing.T) {
	var chunks = Split(10, 4, 1)
	var want = []int{3, 3, 2, 2}
	for i, c := range chunks {
		if c.Len() != want[i] {
			t.Fatalf("chunk %v len=%v want %v", i, c.Len(), want[i])
		}
	}
}

func TestForChunksVisitsEveryIndexOnce(t *testing.T) {
	const length = 1000
	var visits [length]int32
	ForChunks(Split(length, 7, 10), func(from, to int) {
		for i := from; i < to; i++ {
			atomic.AddInt32(&visits[i], 1)
		}
	})
	for i, v := range visits {
		if v != 1 {
			t.Fatalf("index %v visited %v times", i, v)
		}
	}
}

func TestForSingleChunkRunsInline(t *testing.T) {
	var calls int
	For(3, 100, func(from, to int) {
		calls++
		if from != 0 || to != 3 {
			t.Fatalf("unexpected chunk [%v, %v)", from, to)
		}
	})
	if calls != 1 {
		t.Fatalf("calls=%v", calls)
	}
}

func TestForFansOutAcrossThreads(t *testing.T) {
	var previous = runtime.GOMAXPROCS(4)
	defer runtime.GOMAXPROCS(previous)

	const length = 101
	var calls, total int32
	For(length, 16, func(from, to int) {
		atomic.AddInt32(&calls, 1)
		atomic.AddInt32(&total, int32(to-from))
	})
	if calls != 4 || total != length {
		t.Fatalf("calls=%v total=%v", calls, total)
	}
}
