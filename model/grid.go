package model

import (
	"crypto/md5"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-universe/rules"
	"github.com/sheikhrachel/go-universe/utils"
)

// Cell is the state of a single grid position
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

func (c Cell) String() string {
	if c == Alive {
		return "Alive"
	}
	return "Dead"
}

func cellOf(alive bool) Cell {
	if alive {
		return Alive
	}
	return Dead
}

// ErrOutOfRange is wrapped by every checked operation given coordinates outside the grid
var ErrOutOfRange = errors.New("coordinates out of range")

// SeedFunc decides the initial state of one cell; it is called once per cell in index order
type SeedFunc func() bool

// AllDead is a SeedFunc producing an empty grid
func AllDead() bool { return false }

// Coord addresses a cell by row and column
type Coord struct {
	Row    uint32
	Column uint32
}

// Grid is a toroidal Game of Life universe backed by a bit-packed, row-major cell array
type Grid struct {
	width  uint32
	height uint32
	cells  *bitset.BitSet

	pool  *BufferPool
	debug bool
}

// NewGrid creates a width x height grid, calling seed once per cell
func NewGrid(width, height uint32, seed SeedFunc) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		pool:   NewBufferPool(),
	}
	g.Reset(seed)
	return g
}

// Width returns the width of the grid
func (g *Grid) Width() uint32 {
	return g.width
}

// Height returns the height of the grid
func (g *Grid) Height() uint32 {
	return g.height
}

// Len returns the number of cells, always width*height
func (g *Grid) Len() uint {
	return g.cells.Len()
}

func (g *Grid) size() uint {
	return uint(g.width) * uint(g.height)
}

// SetWidth replaces the width. All cells are reset to Dead.
func (g *Grid) SetWidth(width uint32) {
	g.width = width
	g.ResetAllDead()
}

// SetHeight replaces the height. All cells are reset to Dead.
func (g *Grid) SetHeight(height uint32) {
	g.height = height
	g.ResetAllDead()
}

// SetDiagnostics toggles tick timing and per-cell transition logging
func (g *Grid) SetDiagnostics(on bool) {
	g.debug = on
}

// Reset reseeds every cell from seed. A nil seed leaves every cell Dead.
func (g *Grid) Reset(seed SeedFunc) {
	g.cells = bitset.New(g.size())
	if seed == nil {
		return
	}
	for i := range g.size() {
		if seed() {
			g.cells.Set(i)
		}
	}
}

// ResetAllDead sets every cell to Dead
func (g *Grid) ResetAllDead() {
	g.Reset(nil)
}

func (g *Grid) index(row, column uint32) uint {
	return uint(row)*uint(g.width) + uint(column)
}

func (g *Grid) inBounds(row, column uint32) bool {
	return row < g.height && column < g.width
}

// Index returns the position of (row, column) in the packed cell array
func (g *Grid) Index(row, column uint32) (int, error) {
	if !g.inBounds(row, column) {
		return 0, errors.Wrapf(ErrOutOfRange, "[Index] row %d column %d on %dx%d grid", row, column, g.width, g.height)
	}
	return int(g.index(row, column)), nil
}

// Cell returns the state of (row, column)
func (g *Grid) Cell(row, column uint32) (Cell, error) {
	if !g.inBounds(row, column) {
		return Dead, errors.Wrapf(ErrOutOfRange, "[Cell] row %d column %d on %dx%d grid", row, column, g.width, g.height)
	}
	return cellOf(g.cells.Test(g.index(row, column))), nil
}

// liveNeighborCount sums the eight toroidally wrapped neighbors. Adding
// height-1 / width-1 instead of subtracting one keeps the arithmetic unsigned.
func (g *Grid) liveNeighborCount(row, column uint32) uint8 {
	var count uint8
	for _, dr := range [3]uint32{g.height - 1, 0, 1} {
		for _, dc := range [3]uint32{g.width - 1, 0, 1} {
			if dr == 0 && dc == 0 {
				continue
			}
			r := uint32((uint64(row) + uint64(dr)) % uint64(g.height))
			c := uint32((uint64(column) + uint64(dc)) % uint64(g.width))
			if g.cells.Test(g.index(r, c)) {
				count++
			}
		}
	}
	return count
}

// LiveNeighborCount returns how many of the eight wrapped neighbors of (row, column) are alive
func (g *Grid) LiveNeighborCount(row, column uint32) (uint8, error) {
	if !g.inBounds(row, column) {
		return 0, errors.Wrapf(ErrOutOfRange, "[LiveNeighborCount] row %d column %d on %dx%d grid", row, column, g.width, g.height)
	}
	return g.liveNeighborCount(row, column), nil
}

// Tick advances the grid one generation. Next states are computed into a
// separate buffer from the current generation only, then swapped in.
func (g *Grid) Tick() {
	if g.debug {
		defer utils.StartTimer("Grid.Tick").Stop()
	}

	next := g.pool.Get(g.size())
	for row := range g.height {
		for col := range g.width {
			idx := g.index(row, col)
			alive := g.cells.Test(idx)
			neighbors := g.liveNeighborCount(row, col)
			becomes := rules.ApplyConwayRules(neighbors, alive)
			next.SetTo(idx, becomes)

			if g.debug {
				g.logTransition(row, col, alive, becomes, neighbors)
			}
		}
	}

	g.cells, next = next, g.cells
	g.pool.Put(next)
}

func (g *Grid) logTransition(row, col uint32, was, becomes bool, neighbors uint8) {
	utils.Logf("cell[%d, %d] is initially %v and has %d live neighbors", row, col, cellOf(was), neighbors)
	switch {
	case was && !becomes:
		utils.Logf("cell[%d, %d] transitioned Alive to Dead", row, col)
	case !was && becomes:
		utils.Logf("cell[%d, %d] transitioned Dead to Alive", row, col)
	}
}

// Cells exposes the packed cell words, least significant bit first. The slice
// is only valid until the next Tick and must not be modified.
func (g *Grid) Cells() []uint64 {
	return g.cells.Bytes()
}

// LiveCells returns the number of Alive cells
func (g *Grid) LiveCells() int {
	return int(g.cells.Count())
}

// Hash returns an MD5 digest of the dimensions and cell state
func (g *Grid) Hash() string {
	h := md5.New()
	_, _ = fmt.Fprintf(h, "%dx%d:", g.width, g.height)
	for i := range g.size() {
		if g.cells.Test(i) {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
