package core

import "fmt"

// Grid stores a rows×cols matrix of cells in row-major order.
type Grid struct {
	rows, cols int
	data       []Cell
}

// MaxCells caps rows*cols for a single grid.
const MaxCells = 1 << 20

// NewGrid allocates a grid with every cell Empty. Both dimensions must be
// positive and their product at most MaxCells.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", rows, cols)
	}
	if rows > MaxCells/cols {
		return nil, fmt.Errorf("grid %dx%d exceeds %d cells", rows, cols, MaxCells)
	}
	return &Grid{rows: rows, cols: cols, data: make([]Cell, rows*cols)}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{Rows: g.rows, Cols: g.cols} }

// In reports whether (row, col) lies inside the grid.
func (g *Grid) In(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Index returns the linear slice index for (row, col).
func (g *Grid) Index(row, col int) int { return row*g.cols + col }

// At returns the cell at (row, col). Out-of-bounds positions read as Empty.
func (g *Grid) At(row, col int) Cell {
	if !g.In(row, col) {
		return Cell{}
	}
	return g.data[g.Index(row, col)]
}

// Set overwrites the cell at (row, col) and reports whether it was in bounds.
func (g *Grid) Set(row, col int, c Cell) bool {
	if !g.In(row, col) {
		return false
	}
	g.data[g.Index(row, col)] = c
	return true
}

// Symbols returns the display symbols of every cell, one slice per row.
func (g *Grid) Symbols() [][]string {
	out := make([][]string, g.rows)
	for r := 0; r < g.rows; r++ {
		row := make([]string, g.cols)
		for c := 0; c < g.cols; c++ {
			row[c] = g.data[g.Index(r, c)].Symbol()
		}
		out[r] = row
	}
	return out
}
