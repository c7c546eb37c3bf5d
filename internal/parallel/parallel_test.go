package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type span struct{ begin, end int }

func collect(n, blockSize, workers int) []span {
	var mu sync.Mutex
	var spans []span
	ForBlocked(n, blockSize, workers, func(begin, end int) {
		mu.Lock()
		spans = append(spans, span{begin, end})
		mu.Unlock()
	})
	return spans
}

func TestForBlocked_SequentialOrder(t *testing.T) {
	got := collect(40, 16, 1)
	assert.Equal(t, []span{{0, 16}, {16, 32}, {32, 40}}, got)
}

func TestForBlocked_CoversEveryIndexOnce(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		blockSize int
		workers   int
	}{
		{"exact blocks", 64, 16, 4},
		{"ragged tail", 1000, 16, 8},
		{"single block", 5, 16, 4},
		{"default block size", 100, 0, 3},
		{"gomaxprocs", 333, 16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := make([]int32, tt.n)
			ForBlocked(tt.n, tt.blockSize, tt.workers, func(begin, end int) {
				for i := begin; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i, h := range hits {
				require.Equal(t, int32(1), h, "index %d", i)
			}
		})
	}
}

func TestForBlocked_BlockBoundaries(t *testing.T) {
	for _, s := range collect(100, 16, 4) {
		assert.Zero(t, s.begin%16, "block starts on a boundary")
		assert.LessOrEqual(t, s.end-s.begin, 16)
		assert.Positive(t, s.end-s.begin)
	}
}

func TestForBlocked_Empty(t *testing.T) {
	assert.Empty(t, collect(0, 16, 4))
	assert.Empty(t, collect(-3, 16, 4))
}

func TestForEach(t *testing.T) {
	out := make([]int, 77)
	ForEach(len(out), 16, 4, func(i int) {
		out[i] = i * i
	})
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}
