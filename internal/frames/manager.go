package frames

import (
	"fmt"

	"framemap/internal/core"

	"go.uber.org/zap"
)

// BoundsPolicy decides what happens when a link's cell lies outside the
// target frame.
type BoundsPolicy string

const (
	// BoundsOneSided records the link on the source frame only.
	BoundsOneSided BoundsPolicy = "one-sided"
	// BoundsStrict refuses the link.
	BoundsStrict BoundsPolicy = "strict"
)

// ParseBoundsPolicy validates a policy name.
func ParseBoundsPolicy(s string) (BoundsPolicy, error) {
	switch p := BoundsPolicy(s); p {
	case BoundsOneSided, BoundsStrict:
		return p, nil
	default:
		return "", fmt.Errorf("unknown bounds policy %q (want %q or %q)", s, BoundsOneSided, BoundsStrict)
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger attaches a logger for link and frame events.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithNotices routes placement notices to fn.
func WithNotices(fn NoticeFunc) Option {
	return func(m *Manager) { m.notify = fn }
}

// WithBoundsPolicy selects how links onto smaller frames are handled.
func WithBoundsPolicy(p BoundsPolicy) Option {
	return func(m *Manager) {
		if p != "" {
			m.policy = p
		}
	}
}

// Manager owns the frame collection. Frame ids equal their index. A Manager
// is not safe for concurrent use.
type Manager struct {
	frames []*Frame
	policy BoundsPolicy
	notify NoticeFunc
	log    *zap.Logger
}

// NewManager returns an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{policy: BoundsOneSided, log: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the active bounds policy.
func (m *Manager) Policy() BoundsPolicy { return m.policy }

// Len returns the number of frames.
func (m *Manager) Len() int { return len(m.frames) }

// Frames returns the frames in id order. The slice is a copy.
func (m *Manager) Frames() []*Frame {
	out := make([]*Frame, len(m.frames))
	copy(out, m.frames)
	return out
}

// Frame returns the frame with the given id.
func (m *Manager) Frame(id int) (*Frame, error) {
	if id < 0 || id >= len(m.frames) {
		return nil, fmt.Errorf("frame %d (have %d): %w", id, len(m.frames), ErrUnknownFrame)
	}
	return m.frames[id], nil
}

// AddFrame appends a new rows×cols frame whose id is the current frame count.
func (m *Manager) AddFrame(rows, cols int) (*Frame, error) {
	id := len(m.frames)
	f, err := newFrame(rows, cols, id, m.notify)
	if err != nil {
		m.log.Debug("frame refused", zap.Int("rows", rows), zap.Int("cols", cols), zap.Error(err))
		return nil, err
	}
	m.frames = append(m.frames, f)
	m.log.Debug("frame created", zap.Int("frame", id), zap.Int("rows", rows), zap.Int("cols", cols))
	return f, nil
}

// SetLink connects (row, col) of frame from with the same cell of frame to.
// A refused link leaves both frames untouched. When the cell lies outside to
// and the policy is BoundsOneSided, only from records the link.
func (m *Manager) SetLink(row, col, from, to int) error {
	err := m.setLink(row, col, from, to)
	fields := []zap.Field{zap.Int("from", from), zap.Int("to", to), zap.Int("row", row), zap.Int("col", col)}
	if err != nil {
		m.log.Debug("link refused", append(fields, zap.String("code", string(Classify(err))), zap.Error(err))...)
		return err
	}
	m.log.Debug("link created", fields...)
	return nil
}

func (m *Manager) setLink(row, col, from, to int) error {
	src, err := m.Frame(from)
	if err != nil {
		return err
	}
	dst, err := m.Frame(to)
	if err != nil {
		return err
	}
	if from == to {
		return fmt.Errorf("frame %d: %w", from, ErrSelfLink)
	}
	at := core.Coord{Row: row, Col: col}
	if _, claimed := dst.links[at]; claimed {
		return fmt.Errorf("frame %d %v: %w", to, at, ErrTargetClaimed)
	}
	if !src.In(row, col) {
		return fmt.Errorf("frame %d %v: %w", from, at, ErrOutOfBounds)
	}
	reachesTarget := dst.In(row, col)
	if reachesTarget && !dst.CanPlace(row, col) {
		dst.notify.emit(Notice{Kind: NoticeOccupied, Frame: to, Target: from, Row: row, Col: col})
		return fmt.Errorf("frame %d %v: %w", to, at, ErrOccupied)
	}
	if !reachesTarget && m.policy == BoundsStrict {
		return fmt.Errorf("frame %d %v: %w", to, at, ErrOutOfBounds)
	}
	if err := src.setLink(row, col, to); err != nil {
		return err
	}
	if reachesTarget {
		if err := dst.setLink(row, col, from); err != nil {
			return fmt.Errorf("frame %d %v refused after source accepted: %w", to, at, ErrInvariant)
		}
	}
	return nil
}

// Block marks (row, col) of a frame as unusable for new links.
func (m *Manager) Block(frame, row, col int) error {
	f, err := m.Frame(frame)
	if err != nil {
		return err
	}
	if err := f.block(row, col); err != nil {
		m.log.Debug("block refused", zap.Int("frame", frame), zap.Int("row", row), zap.Int("col", col),
			zap.String("code", string(Classify(err))))
		return err
	}
	m.log.Debug("cell blocked", zap.Int("frame", frame), zap.Int("row", row), zap.Int("col", col))
	return nil
}

// Verify checks that every frame's links agree with its grid and that links
// are mirrored on the target frame wherever the target has the cell.
func (m *Manager) Verify() error {
	for _, f := range m.frames {
		for at, target := range f.links {
			if !f.In(at.Row, at.Col) {
				return fmt.Errorf("frame %d link %v outside grid: %w", f.id, at, ErrInvariant)
			}
			if got := f.Cell(at.Row, at.Col); got != core.LinkedTo(target) {
				return fmt.Errorf("frame %d link %v -> %d but cell is %v: %w", f.id, at, target, got, ErrInvariant)
			}
		}
		for r := 0; r < f.Rows(); r++ {
			for c := 0; c < f.Cols(); c++ {
				target, ok := f.Cell(r, c).Linked()
				if !ok {
					continue
				}
				if _, recorded := f.links[core.Coord{Row: r, Col: c}]; !recorded {
					return fmt.Errorf("frame %d cell (%d, %d) linked but not recorded: %w", f.id, r, c, ErrInvariant)
				}
				dst, err := m.Frame(target)
				if err != nil {
					return fmt.Errorf("frame %d cell (%d, %d) targets missing frame %d: %w", f.id, r, c, target, ErrInvariant)
				}
				if dst.In(r, c) && dst.Cell(r, c) != core.LinkedTo(f.id) {
					return fmt.Errorf("frame %d cell (%d, %d) -> %d not mirrored (got %v): %w",
						f.id, r, c, target, dst.Cell(r, c), ErrInvariant)
				}
			}
		}
	}
	return nil
}
