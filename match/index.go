// Package match holds the palette-matching engine: a precomputed perceptual
// index over one variation's candidates and a memoizing nearest-color
// resolver.
package match

import (
	"fmt"
	"image/color"

	"recolor/cielab"
	"recolor/theme"
)

// Candidate pairs a palette color's device and perceptual representations.
type Candidate struct {
	Device color.RGBA
	Lab    cielab.Lab
}

// Index is one variation's candidate list with every color converted to Lab
// exactly once. Immutable after construction and safe to share read-only
// across any number of workers.
type Index struct {
	name       string
	candidates []Candidate
}

// NewIndex builds the index for a variation. The candidate order of the
// variation is kept: it decides distance ties.
func NewIndex(v theme.Variation) (*Index, error) {
	if len(v.Colors) == 0 {
		return nil, fmt.Errorf("variation %q: %w", v.Name, theme.ErrEmptyPalette)
	}

	idx := &Index{
		name:       v.Name,
		candidates: make([]Candidate, len(v.Colors)),
	}
	for i, c := range v.Colors {
		idx.candidates[i] = Candidate{
			Device: c.RGB,
			Lab:    cielab.FromRGB(c.RGB.R, c.RGB.G, c.RGB.B),
		}
	}
	return idx, nil
}

func (idx *Index) Name() string { return idx.name }

func (idx *Index) Candidates() []Candidate { return idx.candidates }

// nearest scans every candidate and returns the device color of the closest
// one under dist. The palette candidate is passed as the reference argument,
// the pixel as the sample; strict less-than keeps the earliest candidate on
// an exact tie, so results do not depend on scan scheduling.
func (idx *Index) nearest(pixel cielab.Lab, dist cielab.DistanceFunc) color.RGBA {
	best := 0
	bestDist := dist(idx.candidates[0].Lab, pixel)
	for i := 1; i < len(idx.candidates); i++ {
		if bestDist == 0 {
			break
		}
		if d := dist(idx.candidates[i].Lab, pixel); d < bestDist {
			best, bestDist = i, d
		}
	}
	return idx.candidates[best].Device
}
