package core

import "strconv"

// CellKind enumerates the states a frame cell can be in.
type CellKind uint8

const (
	// CellEmpty marks a cell that has not been claimed.
	CellEmpty CellKind = iota
	// CellLinked marks a cell that links out to another frame.
	CellLinked
	// CellBlocked marks a cell that can no longer receive links.
	CellBlocked
)

// BlockedSymbol is the display symbol for blocked cells.
const BlockedSymbol = "X"

// EmptySymbol is the display symbol for unclaimed cells.
const EmptySymbol = "."

// Cell is the state of a single grid position. The zero value is Empty.
// Target is only meaningful when Kind is CellLinked.
type Cell struct {
	Kind   CellKind
	Target int
}

// Empty returns an unclaimed cell.
func Empty() Cell { return Cell{} }

// LinkedTo returns a cell linking to the frame with the given id.
func LinkedTo(frame int) Cell { return Cell{Kind: CellLinked, Target: frame} }

// Blocked returns a cell that is unusable for new links.
func Blocked() Cell { return Cell{Kind: CellBlocked} }

// IsEmpty reports whether the cell is unclaimed.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// Linked returns the target frame and true when the cell holds a link.
func (c Cell) Linked() (int, bool) {
	if c.Kind != CellLinked {
		return 0, false
	}
	return c.Target, true
}

// Symbol renders the cell the way the shell displays it.
func (c Cell) Symbol() string {
	switch c.Kind {
	case CellLinked:
		return strconv.Itoa(c.Target)
	case CellBlocked:
		return BlockedSymbol
	default:
		return EmptySymbol
	}
}

func (c Cell) String() string { return c.Symbol() }
