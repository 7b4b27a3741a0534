package frames

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPlacementOptionsFreshFrames(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 1, 2)
	mustAdd(t, m, 1, 1)
	mustAdd(t, m, 2, 2)

	opts, err := m.PlacementOptions(0)
	if err != nil {
		t.Fatalf("PlacementOptions: %v", err)
	}
	want := [][][]int{{{1, 2}, {1, 2}}}
	if diff := cmp.Diff(want, opts.Grid()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if opts.At(1, 0) != nil {
		t.Fatal("At outside the source frame should be nil")
	}
}

func TestPlacementOptionsExclusions(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 2, 2)
	mustAdd(t, m, 2, 2)
	mustAdd(t, m, 2, 2)
	mustAdd(t, m, 2, 2)
	if err := m.SetLink(0, 1, 1, 2); err != nil {
		t.Fatalf("SetLink: %v", err)
	}
	if err := m.Block(3, 1, 0); err != nil {
		t.Fatalf("Block: %v", err)
	}

	opts, err := m.PlacementOptions(0)
	if err != nil {
		t.Fatalf("PlacementOptions: %v", err)
	}
	want := [][][]int{
		{{1, 2, 3}, {3}},
		{{1, 2}, {1, 2, 3}},
	}
	if diff := cmp.Diff(want, opts.Grid()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	for _, f := range m.Frames() {
		if f.ID() == 0 {
			continue
		}
		for r := 0; r < 2; r++ {
			for c := 0; c < 2; c++ {
				_, linked := f.LinkAt(r, c)
				if (linked || !f.Cell(r, c).IsEmpty()) && opts.Has(r, c, f.ID()) {
					t.Fatalf("frame %d offered at (%d,%d) despite being used", f.ID(), r, c)
				}
			}
		}
	}
}

func TestPlacementOptionsIgnoresSourceState(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 1, 1)
	mustAdd(t, m, 1, 1)
	mustAdd(t, m, 1, 1)
	if err := m.SetLink(0, 0, 0, 1); err != nil {
		t.Fatalf("SetLink: %v", err)
	}
	opts, _ := m.PlacementOptions(0)
	if diff := cmp.Diff([]int{2}, opts.At(0, 0)); diff != "" {
		t.Fatalf("candidates (-want +got):\n%s", diff)
	}
}

func TestPlacementOptionsOutsideSmallerFrame(t *testing.T) {
	for _, tc := range []struct {
		policy BoundsPolicy
		want   []int
	}{
		{BoundsOneSided, []int{1}},
		{BoundsStrict, []int{}},
	} {
		m := NewManager(WithBoundsPolicy(tc.policy))
		mustAdd(t, m, 2, 2)
		mustAdd(t, m, 1, 1)
		opts, _ := m.PlacementOptions(0)
		if diff := cmp.Diff(tc.want, opts.At(1, 1), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("%s: candidates at (1,1) (-want +got):\n%s", tc.policy, diff)
		}
	}
}

func TestPlacementOptionsIdempotent(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 3, 3)
	mustAdd(t, m, 2, 2)
	mustAdd(t, m, 3, 1)
	_ = m.SetLink(1, 0, 0, 2)
	_ = m.SetLink(1, 1, 1, 0)

	first, err := m.PlacementOptions(0)
	if err != nil {
		t.Fatalf("PlacementOptions: %v", err)
	}
	before := snapshot(m)
	second, _ := m.PlacementOptions(0)
	if diff := cmp.Diff(first.Grid(), second.Grid()); diff != "" {
		t.Fatalf("repeated query differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, snapshot(m)); diff != "" {
		t.Fatalf("query mutated frames (-before +after):\n%s", diff)
	}
}

func TestPlacementOptionsUnknownFrame(t *testing.T) {
	m := NewManager()
	if _, err := m.PlacementOptions(0); Classify(err) != CodeUnknownFrame {
		t.Fatalf("err = %v, expected unknown frame", err)
	}
}
