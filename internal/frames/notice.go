package frames

import "fmt"

// NoticeKind distinguishes placement notices.
type NoticeKind uint8

const (
	// NoticePlaced reports that a frame recorded a link.
	NoticePlaced NoticeKind = iota
	// NoticeOccupied reports that a frame refused a link because the cell
	// was already in use.
	NoticeOccupied
	// NoticeBlocked reports that a cell was marked unusable.
	NoticeBlocked
)

// Notice is a human-readable event emitted while frames are mutated.
type Notice struct {
	Kind   NoticeKind
	Frame  int
	Target int
	Row    int
	Col    int
}

func (n Notice) String() string {
	switch n.Kind {
	case NoticePlaced:
		return fmt.Sprintf("Link placed from frame %d to frame %d at (%d, %d).", n.Frame, n.Target, n.Row, n.Col)
	case NoticeOccupied:
		return fmt.Sprintf("Frame %d cell (%d, %d) is occupied.", n.Frame, n.Row, n.Col)
	case NoticeBlocked:
		return fmt.Sprintf("Frame %d cell (%d, %d) blocked.", n.Frame, n.Row, n.Col)
	default:
		return fmt.Sprintf("frame %d (%d, %d)", n.Frame, n.Row, n.Col)
	}
}

// NoticeFunc receives notices. A nil NoticeFunc discards them.
type NoticeFunc func(Notice)

func (f NoticeFunc) emit(n Notice) {
	if f != nil {
		f(n)
	}
}
