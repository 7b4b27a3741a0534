package frames

import (
	"fmt"
	"slices"

	"framemap/internal/core"
)

// Frame is one fixed-size grid whose cells may link out to other frames.
// Frames are created and mutated only through a Manager.
type Frame struct {
	id     int
	grid   *core.Grid
	links  map[core.Coord]int
	notify NoticeFunc
}

func newFrame(rows, cols, id int, notify NoticeFunc) (*Frame, error) {
	g, err := core.NewGrid(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}
	return &Frame{id: id, grid: g, links: make(map[core.Coord]int), notify: notify}, nil
}

// ID returns the frame's creation-order identifier.
func (f *Frame) ID() int { return f.id }

// Rows returns the number of grid rows.
func (f *Frame) Rows() int { return f.grid.Rows() }

// Cols returns the number of grid columns.
func (f *Frame) Cols() int { return f.grid.Cols() }

// Size returns the grid dimensions.
func (f *Frame) Size() core.Size { return f.grid.Size() }

// In reports whether (row, col) lies inside the frame.
func (f *Frame) In(row, col int) bool { return f.grid.In(row, col) }

// Cell returns the state at (row, col); out-of-bounds positions read as Empty.
func (f *Frame) Cell(row, col int) core.Cell { return f.grid.At(row, col) }

// Symbols returns the display symbols of the grid, one slice per row.
func (f *Frame) Symbols() [][]string { return f.grid.Symbols() }

// CanPlace reports whether (row, col) is in bounds and Empty.
func (f *Frame) CanPlace(row, col int) bool {
	return f.grid.In(row, col) && f.grid.At(row, col).IsEmpty()
}

// LinkAt returns the frame linked from (row, col), if any.
func (f *Frame) LinkAt(row, col int) (int, bool) {
	target, ok := f.links[core.Coord{Row: row, Col: col}]
	return target, ok
}

// Link is one recorded outbound connection.
type Link struct {
	At     core.Coord
	Target int
}

// Links returns the frame's outbound links in row-major order.
func (f *Frame) Links() []Link {
	out := make([]Link, 0, len(f.links))
	for at, target := range f.links {
		out = append(out, Link{At: at, Target: target})
	}
	slices.SortFunc(out, func(a, b Link) int {
		if a.At.Less(b.At) {
			return -1
		}
		if b.At.Less(a.At) {
			return 1
		}
		return 0
	})
	return out
}

// LinkCount returns the number of outbound links.
func (f *Frame) LinkCount() int { return len(f.links) }

func (f *Frame) setLink(row, col, target int) error {
	if !f.grid.In(row, col) {
		return fmt.Errorf("frame %d %v: %w", f.id, core.Coord{Row: row, Col: col}, ErrOutOfBounds)
	}
	if !f.grid.At(row, col).IsEmpty() {
		f.notify.emit(Notice{Kind: NoticeOccupied, Frame: f.id, Target: target, Row: row, Col: col})
		return fmt.Errorf("frame %d %v: %w", f.id, core.Coord{Row: row, Col: col}, ErrOccupied)
	}
	f.grid.Set(row, col, core.LinkedTo(target))
	f.links[core.Coord{Row: row, Col: col}] = target
	f.notify.emit(Notice{Kind: NoticePlaced, Frame: f.id, Target: target, Row: row, Col: col})
	return nil
}

func (f *Frame) block(row, col int) error {
	if !f.grid.In(row, col) {
		return fmt.Errorf("frame %d %v: %w", f.id, core.Coord{Row: row, Col: col}, ErrOutOfBounds)
	}
	if !f.grid.At(row, col).IsEmpty() {
		f.notify.emit(Notice{Kind: NoticeOccupied, Frame: f.id, Row: row, Col: col})
		return fmt.Errorf("frame %d %v: %w", f.id, core.Coord{Row: row, Col: col}, ErrOccupied)
	}
	f.grid.Set(row, col, core.Blocked())
	f.notify.emit(Notice{Kind: NoticeBlocked, Frame: f.id, Row: row, Col: col})
	return nil
}
