package core

import "fmt"

// Size describes the dimensions of a frame grid.
type Size struct {
	Rows int
	Cols int
}

// Contains reports whether (row, col) lies inside a grid of this size.
func (s Size) Contains(row, col int) bool {
	return row >= 0 && row < s.Rows && col >= 0 && col < s.Cols
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Rows, s.Cols) }

// Coord addresses a single cell.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string { return fmt.Sprintf("(%d, %d)", c.Row, c.Col) }

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}
