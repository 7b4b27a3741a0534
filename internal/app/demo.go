package app

import (
	"fmt"

	"framemap/internal/core"
	"framemap/internal/frames"
)

// DemoConfig controls random layout generation.
type DemoConfig struct {
	Seed     int64
	Frames   int
	MinDim   int
	MaxDim   int
	Attempts int
}

// DefaultDemoConfig returns a small layout suitable for a terminal.
func DefaultDemoConfig() DemoConfig {
	return DemoConfig{Seed: 42, Frames: 4, MinDim: 1, MaxDim: 4, Attempts: 12}
}

// DemoStats counts the outcome of generated link attempts.
type DemoStats struct {
	Frames  int
	Linked  int
	Refused int
}

func (d DemoStats) String() string {
	return fmt.Sprintf("%d frame(s), %d link(s) placed, %d refused", d.Frames, d.Linked, d.Refused)
}

// Populate adds cfg.Frames random frames to m and then tries cfg.Attempts
// links, each picked from the placement options of a random source cell.
// The same seed produces the same layout.
func Populate(m *frames.Manager, cfg DemoConfig) (DemoStats, error) {
	if cfg.Frames <= 0 {
		return DemoStats{}, fmt.Errorf("demo needs at least one frame, got %d", cfg.Frames)
	}
	if cfg.MinDim <= 0 {
		cfg.MinDim = 1
	}
	if cfg.MaxDim < cfg.MinDim {
		cfg.MaxDim = cfg.MinDim
	}

	rng := core.NewRNG(cfg.Seed)
	var stats DemoStats
	for i := 0; i < cfg.Frames; i++ {
		if _, err := m.AddFrame(rng.Between(cfg.MinDim, cfg.MaxDim), rng.Between(cfg.MinDim, cfg.MaxDim)); err != nil {
			return stats, err
		}
		stats.Frames++
	}
	if m.Len() < 2 {
		return stats, nil
	}

	for i := 0; i < cfg.Attempts; i++ {
		from := rng.IntN(m.Len())
		opts, err := m.PlacementOptions(from)
		if err != nil {
			return stats, err
		}
		row, col := rng.IntN(opts.Size.Rows), rng.IntN(opts.Size.Cols)
		to, ok := core.Pick(rng, opts.At(row, col))
		if !ok {
			stats.Refused++
			continue
		}
		if err := m.SetLink(row, col, from, to); err != nil {
			stats.Refused++
			continue
		}
		stats.Linked++
	}
	return stats, nil
}
