package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/logrusorgru/aurora"
)

const (
	glyphAlive = '◼'
	glyphDead  = '◻'

	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearCmd = "clear"
)

// Render returns one line per row, one glyph per cell, each row newline terminated
func (g *Grid) Render() string {
	var b strings.Builder
	b.Grow(int(g.size())*len(string(glyphAlive)) + int(g.height))
	for row := range g.height {
		for col := range g.width {
			if g.cells.Test(g.index(row, col)) {
				b.WriteRune(glyphAlive)
			} else {
				b.WriteRune(glyphDead)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Grid) String() string {
	return g.Render()
}

// TerminalRenderer draws a grid to a terminal in colour
type TerminalRenderer struct {
	Out   io.Writer
	Color bool
}

// NewTerminalRenderer renders to stdout
func NewTerminalRenderer(color bool) *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout, Color: color}
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(g *Grid) {
	au := aurora.NewAurora(r.Color)
	alive := au.Green(gridPosBlock).String()

	var b strings.Builder
	for row := range g.height {
		for col := range g.width {
			if g.cells.Test(g.index(row, col)) {
				b.WriteString(alive)
			} else {
				b.WriteString(gridPosEmpty)
			}
		}
		b.WriteByte('\n')
	}
	_, _ = fmt.Fprint(r.Out, b.String())
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.Out
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.Out, "Error clearing terminal:", err)
	}
}
