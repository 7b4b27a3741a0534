package frames

import (
	"slices"

	"framemap/internal/core"
)

// Options holds, for every cell of a source frame, the ids of frames that
// could still be linked there.
type Options struct {
	Source int
	Size   core.Size
	sets   [][]int
}

// At returns the ascending candidate ids for (row, col). The result is nil
// outside the source frame.
func (o Options) At(row, col int) []int {
	if !o.Size.Contains(row, col) {
		return nil
	}
	return o.sets[row*o.Size.Cols+col]
}

// Has reports whether frame id is a candidate at (row, col).
func (o Options) Has(row, col, id int) bool {
	_, found := slices.BinarySearch(o.At(row, col), id)
	return found
}

// Grid returns the candidate sets arranged by row then column.
func (o Options) Grid() [][][]int {
	out := make([][][]int, o.Size.Rows)
	for r := range out {
		out[r] = make([][]int, o.Size.Cols)
		for c := range out[r] {
			out[r][c] = slices.Clone(o.At(r, c))
		}
	}
	return out
}

// PlacementOptions computes which frames may receive a link at each cell of
// frame from. A frame F is excluded at a cell when F already records a link
// there or F's own cell there is not Empty; under BoundsStrict F is also
// excluded where the cell lies outside F. The source frame's own cell state
// is not considered. The query does not mutate anything.
func (m *Manager) PlacementOptions(from int) (Options, error) {
	src, err := m.Frame(from)
	if err != nil {
		return Options{}, err
	}
	size := src.Size()
	excluded := make([]map[int]bool, size.Rows*size.Cols)
	for i := range excluded {
		excluded[i] = map[int]bool{from: true}
	}

	for _, f := range m.frames {
		if f.id == from {
			continue
		}
		for at := range f.links {
			if size.Contains(at.Row, at.Col) {
				excluded[at.Row*size.Cols+at.Col][f.id] = true
			}
		}
		for r := 0; r < size.Rows; r++ {
			for c := 0; c < size.Cols; c++ {
				inside := f.In(r, c)
				if (inside && !f.Cell(r, c).IsEmpty()) || (!inside && m.policy == BoundsStrict) {
					excluded[r*size.Cols+c][f.id] = true
				}
			}
		}
	}

	sets := make([][]int, len(excluded))
	for i, skip := range excluded {
		ids := make([]int, 0, len(m.frames))
		for id := range m.frames {
			if !skip[id] {
				ids = append(ids, id)
			}
		}
		sets[i] = ids
	}
	return Options{Source: from, Size: size, sets: sets}, nil
}
