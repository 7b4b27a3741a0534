package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"framemap/internal/core"
	"framemap/internal/frames"
)

// pad left-aligns s in a field of the given width so multi-digit frame ids
// keep columns straight.
func pad(s string, width int) string {
	if n := len(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func symbolWidth(f *frames.Frame) int {
	w := 1
	for _, row := range f.Symbols() {
		for _, s := range row {
			if len(s) > w {
				w = len(s)
			}
		}
	}
	return w
}

// Frame writes one frame's grid, one row per line.
func Frame(w io.Writer, t Theme, f *frames.Frame) error {
	if _, err := fmt.Fprintln(w, t.Heading(fmt.Sprintf("Frame %d (%s)", f.ID(), f.Size()))); err != nil {
		return err
	}
	width := symbolWidth(f)
	for r := 0; r < f.Rows(); r++ {
		parts := make([]string, f.Cols())
		for c := 0; c < f.Cols(); c++ {
			cell := f.Cell(r, c)
			parts[c] = t.cell(cell, pad(cell.Symbol(), width))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, " "), " ")); err != nil {
			return err
		}
	}
	return nil
}

// Frames writes every frame separated by blank lines.
func Frames(w io.Writer, t Theme, fs []*frames.Frame) error {
	if len(fs) == 0 {
		_, err := fmt.Fprintln(w, "No frames yet.")
		return err
	}
	for i, f := range fs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := Frame(w, t, f); err != nil {
			return err
		}
	}
	return nil
}

// List writes a one-line summary per frame.
func List(w io.Writer, t Theme, fs []*frames.Frame) error {
	if len(fs) == 0 {
		_, err := fmt.Fprintln(w, "No frames yet.")
		return err
	}
	for _, f := range fs {
		line := fmt.Sprintf("%d. Frame %d (%s), %d link(s)", f.ID(), f.ID(), f.Size(), f.LinkCount())
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Options writes the candidate frames for each cell of the source frame as
// "[a, b]", or "." when no frame can be linked there. Cells the source frame
// already uses are marked with their own symbol in parentheses.
func Options(w io.Writer, t Theme, src *frames.Frame, opts frames.Options) error {
	if _, err := fmt.Fprintln(w, t.Heading(fmt.Sprintf("Positions in frame %d:", opts.Source))); err != nil {
		return err
	}
	size := opts.Size
	text := make([][]string, size.Rows)
	width := 1
	for r := 0; r < size.Rows; r++ {
		text[r] = make([]string, size.Cols)
		for c := 0; c < size.Cols; c++ {
			s := formatCandidates(opts.At(r, c))
			if cell := src.Cell(r, c); !cell.IsEmpty() {
				s = "(" + cell.Symbol() + ")"
			}
			text[r][c] = s
			if len(s) > width {
				width = len(s)
			}
		}
	}
	for r := 0; r < size.Rows; r++ {
		parts := make([]string, size.Cols)
		for c := 0; c < size.Cols; c++ {
			parts[c] = t.option(!src.Cell(r, c).IsEmpty(), len(opts.At(r, c)), pad(text[r][c], width))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, " "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func formatCandidates(ids []int) string {
	if len(ids) == 0 {
		return core.EmptySymbol
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Parameters writes a settings snapshot grouped by section.
func Parameters(w io.Writer, t Theme, snap core.ParameterSnapshot) error {
	for i, g := range snap.Groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, t.Heading(g.Name)); err != nil {
			return err
		}
		for _, p := range g.Params {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", p.Label, p.Value); err != nil {
				return err
			}
			if p.Description == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "    %s\n", t.paint(t.Muted, p.Description)); err != nil {
				return err
			}
		}
	}
	return nil
}
