package frames

import (
	"errors"
	"math"
	"math/bits"
	"testing"

	"framemap/internal/core"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func mustAdd(t *testing.T, m *Manager, rows, cols int) *Frame {
	t.Helper()
	f, err := m.AddFrame(rows, cols)
	if err != nil {
		t.Fatalf("AddFrame(%d, %d): %v", rows, cols, err)
	}
	return f
}

func mustVerify(t *testing.T, m *Manager) {
	t.Helper()
	if err := m.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestAddFrameAssignsSequentialIDs(t *testing.T) {
	m := NewManager()
	for i := 0; i < 5; i++ {
		f := mustAdd(t, m, i+1, 2)
		if f.ID() != i {
			t.Fatalf("frame %d got id %d", i, f.ID())
		}
	}
	if _, err := m.AddFrame(0, 3); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("err = %v, expected ErrInvalidDimensions", err)
	}
	next := mustAdd(t, m, 1, 1)
	if next.ID() != 5 || m.Len() != 6 {
		t.Fatalf("after a refused frame next id = %d len = %d, expected 5 and 6", next.ID(), m.Len())
	}
	for i, f := range m.Frames() {
		if f.ID() != i {
			t.Fatalf("Frames()[%d].ID() = %d", i, f.ID())
		}
	}
}

func TestScenarioLinkTwoFrames(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 2, 2)
	mustAdd(t, m, 2, 2)

	if err := m.SetLink(0, 0, 0, 1); err != nil {
		t.Fatalf("SetLink: %v", err)
	}
	f0, _ := m.Frame(0)
	f1, _ := m.Frame(1)
	if diff := cmp.Diff([][]string{{"1", "."}, {".", "."}}, f0.Symbols()); diff != "" {
		t.Fatalf("frame 0 grid mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"0", "."}, {".", "."}}, f1.Symbols()); diff != "" {
		t.Fatalf("frame 1 grid mismatch (-want +got):\n%s", diff)
	}

	// Repeating the same link is refused and changes nothing.
	if err := m.SetLink(0, 0, 0, 1); err == nil {
		t.Fatal("repeated SetLink succeeded")
	}
	if diff := cmp.Diff([][]string{{"1", "."}, {".", "."}}, f0.Symbols()); diff != "" {
		t.Fatalf("frame 0 changed after refusal (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"0", "."}, {".", "."}}, f1.Symbols()); diff != "" {
		t.Fatalf("frame 1 changed after refusal (-want +got):\n%s", diff)
	}
	mustVerify(t, m)
}

func TestScenarioPlacementAndOverwrite(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 2, 2)
	mustAdd(t, m, 2, 2)
	mustAdd(t, m, 1, 1)
	if err := m.SetLink(0, 0, 0, 1); err != nil {
		t.Fatalf("SetLink: %v", err)
	}

	opts, err := m.PlacementOptions(0)
	if err != nil {
		t.Fatalf("PlacementOptions: %v", err)
	}
	if diff := cmp.Diff([]int{2}, opts.At(0, 0)); diff != "" {
		t.Fatalf("candidates at (0,0) (-want +got):\n%s", diff)
	}

	err = m.SetLink(0, 0, 0, 2)
	if !errors.Is(err, ErrOccupied) {
		t.Fatalf("err = %v, expected ErrOccupied", err)
	}
	f2, _ := m.Frame(2)
	if !f2.Cell(0, 0).IsEmpty() {
		t.Fatalf("frame 2 mutated by refused link: %v", f2.Cell(0, 0))
	}

	mustAdd(t, m, 3, 3)
	mustAdd(t, m, 1, 1)
	if err := m.SetLink(0, 0, 3, 4); err != nil {
		t.Fatalf("SetLink 3->4: %v", err)
	}
	f3, _ := m.Frame(3)
	f4, _ := m.Frame(4)
	if f3.Cell(0, 0) != core.LinkedTo(4) || f4.Cell(0, 0) != core.LinkedTo(3) {
		t.Fatalf("3<->4 not symmetric: %v / %v", f3.Cell(0, 0), f4.Cell(0, 0))
	}
	mustVerify(t, m)
}

func TestSetLinkSelfLink(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 2, 2)
	if err := m.SetLink(0, 0, 0, 0); !errors.Is(err, ErrSelfLink) {
		t.Fatalf("err = %v, expected ErrSelfLink", err)
	}
	f, _ := m.Frame(0)
	if !f.CanPlace(0, 0) {
		t.Fatal("self-link mutated the frame")
	}
}

func TestSetLinkUnknownFrame(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 2, 2)
	for _, pair := range [][2]int{{0, 1}, {1, 0}, {-1, 0}} {
		if err := m.SetLink(0, 0, pair[0], pair[1]); !errors.Is(err, ErrUnknownFrame) {
			t.Fatalf("SetLink(%v) err = %v, expected ErrUnknownFrame", pair, err)
		}
	}
}

func TestSetLinkTargetClaimed(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 2, 2)
	mustAdd(t, m, 2, 2)
	mustAdd(t, m, 2, 2)
	if err := m.SetLink(1, 1, 1, 2); err != nil {
		t.Fatalf("SetLink: %v", err)
	}
	// Frame 0's cell is free, but frame 2 already records a link there.
	if err := m.SetLink(1, 1, 0, 2); !errors.Is(err, ErrTargetClaimed) {
		t.Fatalf("err = %v, expected ErrTargetClaimed", err)
	}
	f0, _ := m.Frame(0)
	if !f0.CanPlace(1, 1) {
		t.Fatal("refused link mutated the source frame")
	}
}

func TestSetLinkSourceOutOfBounds(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 1, 1)
	mustAdd(t, m, 3, 3)
	if err := m.SetLink(2, 2, 0, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v, expected ErrOutOfBounds", err)
	}
	f1, _ := m.Frame(1)
	if !f1.CanPlace(2, 2) {
		t.Fatal("refused link mutated the target frame")
	}
}

func TestSetLinkOneSidedOntoSmallerFrame(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 3, 3)
	mustAdd(t, m, 1, 1)
	if err := m.SetLink(2, 2, 0, 1); err != nil {
		t.Fatalf("SetLink: %v", err)
	}
	f0, _ := m.Frame(0)
	f1, _ := m.Frame(1)
	if f0.Cell(2, 2) != core.LinkedTo(1) {
		t.Fatalf("source cell = %v", f0.Cell(2, 2))
	}
	if f1.LinkCount() != 0 {
		t.Fatalf("target recorded %d links for an out-of-bounds cell", f1.LinkCount())
	}
	mustVerify(t, m)
}

func TestSetLinkStrictRefusesSmallerFrame(t *testing.T) {
	m := NewManager(WithBoundsPolicy(BoundsStrict))
	mustAdd(t, m, 3, 3)
	mustAdd(t, m, 1, 1)
	if err := m.SetLink(2, 2, 0, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v, expected ErrOutOfBounds", err)
	}
	f0, _ := m.Frame(0)
	if !f0.CanPlace(2, 2) {
		t.Fatal("strict refusal mutated the source frame")
	}
	if err := m.SetLink(0, 0, 0, 1); err != nil {
		t.Fatalf("in-bounds link under strict policy: %v", err)
	}
}

func TestSetLinkOntoBlockedTargetLeavesNoPartialState(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 2, 2)
	mustAdd(t, m, 2, 2)
	if err := m.Block(1, 0, 1); err != nil {
		t.Fatalf("Block: %v", err)
	}
	if err := m.SetLink(0, 1, 0, 1); !errors.Is(err, ErrOccupied) {
		t.Fatalf("err = %v, expected ErrOccupied", err)
	}
	f0, _ := m.Frame(0)
	if !f0.CanPlace(0, 1) {
		t.Fatal("source frame was mutated")
	}
	mustVerify(t, m)
}

func TestNoOverwrite(t *testing.T) {
	m := NewManager()
	for i := 0; i < 4; i++ {
		mustAdd(t, m, 2, 2)
	}
	if err := m.SetLink(0, 0, 0, 1); err != nil {
		t.Fatalf("SetLink: %v", err)
	}
	if err := m.Block(2, 1, 1); err != nil {
		t.Fatalf("Block: %v", err)
	}
	before := snapshot(m)

	attempts := [][4]int{
		{0, 0, 0, 2}, {0, 0, 1, 3}, {0, 0, 2, 0}, {0, 0, 3, 1},
		{1, 1, 2, 3}, {1, 1, 3, 2}, {1, 1, 2, 0},
	}
	for _, a := range attempts {
		_ = m.SetLink(a[0], a[1], a[2], a[3])
	}
	after := snapshot(m)
	for id := range before {
		for r := range before[id] {
			for c := range before[id][r] {
				if before[id][r][c] != "." && before[id][r][c] != after[id][r][c] {
					t.Fatalf("frame %d cell (%d,%d) changed from %s to %s",
						id, r, c, before[id][r][c], after[id][r][c])
				}
			}
		}
	}
	mustVerify(t, m)
}

func TestSymmetryAcrossManyLinks(t *testing.T) {
	m := NewManager()
	sizes := [][2]int{{3, 3}, {2, 4}, {4, 2}, {1, 1}}
	for _, s := range sizes {
		mustAdd(t, m, s[0], s[1])
	}
	for from := 0; from < m.Len(); from++ {
		for to := 0; to < m.Len(); to++ {
			for r := 0; r < 4; r++ {
				for c := 0; c < 4; c++ {
					if m.SetLink(r, c, from, to) != nil {
						continue
					}
					src, _ := m.Frame(from)
					dst, _ := m.Frame(to)
					if dst.In(r, c) && dst.Cell(r, c) != core.LinkedTo(from) {
						t.Fatalf("link %d->%d at (%d,%d) not mirrored", from, to, r, c)
					}
					if src.Cell(r, c) != core.LinkedTo(to) {
						t.Fatalf("link %d->%d at (%d,%d) missing on source", from, to, r, c)
					}
				}
			}
		}
	}
	mustVerify(t, m)
}

func TestBlockUnknownFrame(t *testing.T) {
	m := NewManager()
	if err := m.Block(0, 0, 0); !errors.Is(err, ErrUnknownFrame) {
		t.Fatalf("err = %v, expected ErrUnknownFrame", err)
	}
}

func TestManagerRoutesNotices(t *testing.T) {
	var got []string
	m := NewManager(WithNotices(func(n Notice) { got = append(got, n.String()) }), WithLogger(zap.NewNop()))
	mustAdd(t, m, 1, 1)
	mustAdd(t, m, 1, 1)
	_ = m.SetLink(0, 0, 0, 1)

	want := []string{
		"Link placed from frame 0 to frame 1 at (0, 0).",
		"Link placed from frame 1 to frame 0 at (0, 0).",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBoundsPolicy(t *testing.T) {
	if p, err := ParseBoundsPolicy("strict"); err != nil || p != BoundsStrict {
		t.Fatalf("ParseBoundsPolicy(strict) = %q, %v", p, err)
	}
	if _, err := ParseBoundsPolicy("lenient"); err == nil {
		t.Fatal("unknown policy accepted")
	}
}

func TestClassify(t *testing.T) {
	m := NewManager()
	mustAdd(t, m, 1, 1)
	cases := map[Code]error{
		CodeUnknownFrame: m.SetLink(0, 0, 0, 9),
		CodeSelfLink:     m.SetLink(0, 0, 0, 0),
		CodeUnknown:      errors.New("other"),
	}
	for want, err := range cases {
		if got := Classify(err); got != want {
			t.Fatalf("Classify(%v) = %s, expected %s", err, got, want)
		}
	}
	if Classify(nil) != CodeUnknown {
		t.Fatal("Classify(nil) should be unknown")
	}
}

func snapshot(m *Manager) [][][]string {
	out := make([][][]string, m.Len())
	for i, f := range m.Frames() {
		out[i] = f.Symbols()
	}
	return out
}

func TestAddFrameRejectsOversizedFrames(t *testing.T) {
	m := NewManager()
	root := int(math.Sqrt(float64(math.MaxInt))) + 1
	half := 1 << (bits.UintSize / 2)
	for _, dims := range [][2]int{{root, root}, {half, half}, {core.MaxCells, 2}} {
		if f, err := m.AddFrame(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("AddFrame(%d, %d) = %v, %v; expected ErrInvalidDimensions", dims[0], dims[1], f, err)
		}
	}
	if m.Len() != 0 {
		t.Fatalf("refused frames were stored: len = %d", m.Len())
	}
	mustAdd(t, m, 1, 1)
	mustAdd(t, m, 1, 1)
	if err := m.SetLink(0, 0, 0, 1); err != nil {
		t.Fatalf("SetLink after refusals: %v", err)
	}
	mustVerify(t, m)
}

func TestSetLinkOntoBlockedTargetEmitsOccupiedNotice(t *testing.T) {
	var got []Notice
	m := NewManager(WithNotices(func(n Notice) { got = append(got, n) }))
	mustAdd(t, m, 1, 1)
	mustAdd(t, m, 1, 1)
	if err := m.Block(1, 0, 0); err != nil {
		t.Fatalf("Block: %v", err)
	}
	got = nil

	if err := m.SetLink(0, 0, 0, 1); !errors.Is(err, ErrOccupied) {
		t.Fatalf("err = %v, expected ErrOccupied", err)
	}
	want := []Notice{{Kind: NoticeOccupied, Frame: 1, Target: 0, Row: 0, Col: 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}
