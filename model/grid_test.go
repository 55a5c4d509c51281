package model

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/go-universe/utils"
)

func allAlive() bool { return true }

func newDeadGrid(t *testing.T, width, height uint32, alive ...Coord) *Grid {
	t.Helper()
	g := NewGrid(width, height, AllDead)
	require.NoError(t, g.SetCells(alive))
	return g
}

func aliveCoords(t *testing.T, g *Grid) []Coord {
	t.Helper()
	var out []Coord
	for row := range g.Height() {
		for col := range g.Width() {
			c, err := g.Cell(row, col)
			require.NoError(t, err)
			if c == Alive {
				out = append(out, Coord{row, col})
			}
		}
	}
	return out
}

func TestNewGrid(t *testing.T) {
	t.Parallel()

	t.Run("calls seed once per cell in index order", func(t *testing.T) {
		t.Parallel()
		calls := 0
		g := NewGrid(4, 3, func() bool {
			calls++
			return calls%2 == 1
		})

		assert.Equal(t, 12, calls)
		assert.Equal(t, uint(12), g.Len())
		for row := range uint32(3) {
			for col := range uint32(4) {
				idx, err := g.Index(row, col)
				require.NoError(t, err)
				c, err := g.Cell(row, col)
				require.NoError(t, err)
				assert.Equal(t, cellOf(idx%2 == 0), c, "row %d col %d", row, col)
			}
		}
	})

	t.Run("nil seed yields an empty grid", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(5, 5, nil)
		assert.Equal(t, 0, g.LiveCells())
		assert.Equal(t, uint32(5), g.Width())
		assert.Equal(t, uint32(5), g.Height())
	})
}

func TestIndex(t *testing.T) {
	t.Parallel()
	g := NewGrid(7, 3, AllDead)

	idx, err := g.Index(2, 5)
	require.NoError(t, err)
	assert.Equal(t, 2*7+5, idx)

	_, err = g.Index(3, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = g.Index(0, 7)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestLiveNeighborCount(t *testing.T) {
	t.Parallel()

	t.Run("diagonal neighbor wraps around both edges", func(t *testing.T) {
		t.Parallel()
		g := newDeadGrid(t, 3, 3, Coord{0, 0})

		n, err := g.LiveNeighborCount(2, 2)
		require.NoError(t, err)
		assert.Equal(t, uint8(1), n)

		n, err = g.LiveNeighborCount(0, 0)
		require.NoError(t, err)
		assert.Equal(t, uint8(0), n)
	})

	t.Run("edges wrap on a larger grid", func(t *testing.T) {
		t.Parallel()
		g := newDeadGrid(t, 6, 5, Coord{0, 0}, Coord{4, 0}, Coord{0, 5}, Coord{4, 5})

		n, err := g.LiveNeighborCount(0, 0)
		require.NoError(t, err)
		assert.Equal(t, uint8(3), n)

		n, err = g.LiveNeighborCount(2, 2)
		require.NoError(t, err)
		assert.Equal(t, uint8(0), n)
	})

	t.Run("every neighbor alive", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(5, 5, allAlive)
		n, err := g.LiveNeighborCount(0, 4)
		require.NoError(t, err)
		assert.Equal(t, uint8(8), n)
	})

	t.Run("single cell grid wraps onto itself", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(1, 1, allAlive)
		n, err := g.LiveNeighborCount(0, 0)
		require.NoError(t, err)
		assert.Equal(t, uint8(5), n)
		assert.NotPanics(t, g.Tick)
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(3, 3, AllDead)
		_, err := g.LiveNeighborCount(3, 1)
		assert.True(t, errors.Is(err, ErrOutOfRange))
	})
}

func TestTick(t *testing.T) {
	t.Parallel()

	t.Run("blinker oscillates with period two", func(t *testing.T) {
		t.Parallel()
		horizontal := []Coord{{2, 1}, {2, 2}, {2, 3}}
		vertical := []Coord{{1, 2}, {2, 2}, {3, 2}}
		g := newDeadGrid(t, 5, 5, horizontal...)

		g.Tick()
		assert.Equal(t, vertical, aliveCoords(t, g))

		g.Tick()
		assert.Equal(t, horizontal, aliveCoords(t, g))
	})

	t.Run("block is a still life", func(t *testing.T) {
		t.Parallel()
		block := []Coord{{2, 2}, {2, 3}, {3, 2}, {3, 3}}
		g := newDeadGrid(t, 6, 6, block...)

		for range 10 {
			g.Tick()
			assert.Equal(t, block, aliveCoords(t, g))
		}
	})

	t.Run("lonely cell dies", func(t *testing.T) {
		t.Parallel()
		g := newDeadGrid(t, 4, 4, Coord{1, 1})
		g.Tick()
		assert.Equal(t, 0, g.LiveCells())
	})

	t.Run("crowded cells die", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(4, 4, allAlive)
		g.Tick()
		assert.Equal(t, 0, g.LiveCells())
	})

	t.Run("empty grid is a no-op", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(0, 0, allAlive)
		assert.NotPanics(t, g.Tick)
		assert.Equal(t, uint(0), g.Len())
	})

	t.Run("length survives repeated ticks", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(9, 4, utils.NewRNG(7).Seed(0.5))
		for range 5 {
			g.Tick()
			assert.Equal(t, uint(36), g.Len())
		}
	})
}

// Not parallel: swaps the package logger.
func TestTickDiagnostics(t *testing.T) {
	var lines []string
	utils.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { utils.SetLogger(nil) })

	blinker := []Coord{{2, 1}, {2, 2}, {2, 3}}
	plain := newDeadGrid(t, 5, 5, blinker...)
	traced := newDeadGrid(t, 5, 5, blinker...)
	traced.SetDiagnostics(true)

	plain.Tick()
	traced.Tick()

	assert.Equal(t, plain.Hash(), traced.Hash())
	assert.Contains(t, lines, "cell[2, 1] transitioned Alive to Dead")
	assert.Contains(t, lines, "cell[1, 2] transitioned Dead to Alive")
	assert.Contains(t, lines, "cell[2, 2] is initially Alive and has 2 live neighbors")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[len(lines)-1], "Grid.Tick: ")
}

func TestResize(t *testing.T) {
	t.Parallel()

	t.Run("set width clears state", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(8, 6, utils.NewRNG(3).Seed(0.5))
		require.NoError(t, g.SetCells([]Coord{{0, 0}, {1, 1}, {5, 7}}))

		g.SetWidth(11)
		assert.Equal(t, uint32(11), g.Width())
		assert.Equal(t, uint(11*6), g.Len())
		assert.Equal(t, 0, g.LiveCells())
	})

	t.Run("set height clears state", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(8, 6, allAlive)

		g.SetHeight(2)
		assert.Equal(t, uint32(2), g.Height())
		assert.Equal(t, uint(16), g.Len())
		assert.Equal(t, 0, g.LiveCells())
	})

	t.Run("zero dimension is valid", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(8, 6, allAlive)

		g.SetWidth(0)
		assert.Equal(t, uint(0), g.Len())
		assert.NotPanics(t, g.Tick)
		assert.Empty(t, g.Cells())
		assert.True(t, errors.Is(g.ToggleCell(0, 0), ErrOutOfRange))
	})
}

func TestReset(t *testing.T) {
	t.Parallel()

	g := NewGrid(10, 10, utils.NewRNG(11).Seed(0.5))
	g.ResetAllDead()
	once := g.Hash()
	g.ResetAllDead()
	assert.Equal(t, once, g.Hash())
	assert.Equal(t, 0, g.LiveCells())

	g.Reset(allAlive)
	assert.Equal(t, 100, g.LiveCells())
	assert.Equal(t, uint(100), g.Len())
}

func TestCells(t *testing.T) {
	t.Parallel()

	g := newDeadGrid(t, 3, 3, Coord{0, 0}, Coord{1, 2})
	words := g.Cells()
	require.Len(t, words, 1)
	assert.Equal(t, uint64(1|1<<5), words[0])

	full := NewGrid(8, 8, allAlive)
	require.Len(t, full.Cells(), 1)
	assert.Equal(t, ^uint64(0), full.Cells()[0])
}

func TestHash(t *testing.T) {
	t.Parallel()

	a := newDeadGrid(t, 4, 4, Coord{1, 1})
	b := newDeadGrid(t, 4, 4, Coord{1, 1})
	assert.Equal(t, a.Hash(), b.Hash())

	require.NoError(t, b.ToggleCell(2, 2))
	assert.NotEqual(t, a.Hash(), b.Hash())

	assert.NotEqual(t, NewGrid(2, 8, AllDead).Hash(), NewGrid(8, 2, AllDead).Hash())
}

func TestBufferPool(t *testing.T) {
	t.Parallel()

	p := NewBufferPool()
	b := p.Get(10)
	assert.Equal(t, uint(10), b.Len())
	p.Put(b)
	assert.Equal(t, uint(20), p.Get(20).Len())

	var nilPool *BufferPool
	assert.NotPanics(t, func() { nilPool.Put(b) })
}

func BenchmarkGridTick(b *testing.B) {
	g := NewGrid(64, 64, utils.NewRNG(1).Seed(0.5))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Tick()
	}
}
