package model

import "github.com/pkg/errors"

// Stamp patterns, '#' alive and '.' dead. Both are square with an odd side so
// they centre on a single cell.
var (
	gliderPattern = [...]string{
		".#.",
		"..#",
		"###",
	}

	pulsarPattern = [...]string{
		"...............",
		"...###...###...",
		"...............",
		".#....#.#....#.",
		".#....#.#....#.",
		".#....#.#....#.",
		"...###...###...",
		"...............",
		"...###...###...",
		".#....#.#....#.",
		".#....#.#....#.",
		".#....#.#....#.",
		"...............",
		"...###...###...",
		"...............",
	}
)

// ToggleCell flips the state of (row, column)
func (g *Grid) ToggleCell(row, column uint32) error {
	if !g.inBounds(row, column) {
		return errors.Wrapf(ErrOutOfRange, "[ToggleCell] row %d column %d on %dx%d grid", row, column, g.width, g.height)
	}
	g.cells.Flip(g.index(row, column))
	return nil
}

// SetCells marks every listed coordinate Alive, leaving the rest untouched.
// All coordinates are checked first; if any is out of range nothing is written.
func (g *Grid) SetCells(coords []Coord) error {
	for _, c := range coords {
		if !g.inBounds(c.Row, c.Column) {
			return errors.Wrapf(ErrOutOfRange, "[SetCells] row %d column %d on %dx%d grid", c.Row, c.Column, g.width, g.height)
		}
	}
	for _, c := range coords {
		g.cells.Set(g.index(c.Row, c.Column))
	}
	return nil
}

// InsertGlider stamps a glider centred on (row, column). It does nothing if
// the 3x3 box would leave the grid.
func (g *Grid) InsertGlider(row, column uint32) {
	g.stamp(gliderPattern[:], row, column)
}

// InsertPulsar stamps a pulsar centred on (row, column). It does nothing if
// the 15x15 box would leave the grid.
func (g *Grid) InsertPulsar(row, column uint32) {
	g.stamp(pulsarPattern[:], row, column)
}

// stamp overwrites the square box around (row, column) with pattern. No wrapping, no clipping.
func (g *Grid) stamp(pattern []string, row, column uint32) {
	half := uint32(len(pattern) / 2)
	if row < half || column < half {
		return
	}
	if uint64(row)+uint64(half) >= uint64(g.height) || uint64(column)+uint64(half) >= uint64(g.width) {
		return
	}

	top, left := row-half, column-half
	for dr, line := range pattern {
		for dc := range len(line) {
			g.cells.SetTo(g.index(top+uint32(dr), left+uint32(dc)), line[dc] == '#')
		}
	}
}
