package cielab

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Lab is a CIE L*a*b* color under the D65 illuminant, on the standard axes:
// L in [0,100], a and b roughly in [-128,128].
type Lab struct {
	L float64 // perceived lightness
	A float64 // green/red axis
	B float64 // blue/yellow axis
}

// FromRGB converts an 8-bit sRGB triple to Lab. Alpha never participates in
// the perceptual representation.
func FromRGB(r, g, b uint8) Lab {
	l, a, bb := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}.Lab()

	// go-colorful keeps Lab on a [0,1]-ish scale; the DeltaE constants below
	// assume the standard L in [0,100] axes.
	return Lab{L: l * 100, A: a * 100, B: bb * 100}
}

// FromColor converts any color.Color, truncating to 8 bits per channel.
func FromColor(c color.Color) Lab {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return FromRGB(rgba.R, rgba.G, rgba.B)
}

// Method selects one of the DeltaE distance formulas.
type Method uint8

const (
	DE2000 Method = iota
	DE1994G
	DE1994T
	DE1976
)

// DistanceFunc computes the perceptual distance between two Lab colors.
// The CIE94 formulas are asymmetric: the first argument is always the
// reference color (the palette candidate), the second the sample (the pixel).
type DistanceFunc func(reference, sample Lab) float64

// Distance resolves the method to its formula. Resolve once per run, not per
// pixel.
func (m Method) Distance() DistanceFunc {
	switch m {
	case DE1976:
		return DeltaE76
	case DE1994G:
		return DeltaE94Graphics
	case DE1994T:
		return DeltaE94Textiles
	default:
		return DeltaE2000
	}
}

func (m Method) String() string {
	switch m {
	case DE2000:
		return "de2000"
	case DE1994G:
		return "de1994g"
	case DE1994T:
		return "de1994t"
	case DE1976:
		return "de1976"
	}
	return fmt.Sprintf("method(%d)", uint8(m))
}

// ParseMethod accepts the CLI spellings of the four methods.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "de2000", "":
		return DE2000, nil
	case "de1994g":
		return DE1994G, nil
	case "de1994t":
		return DE1994T, nil
	case "de1976":
		return DE1976, nil
	}
	return DE2000, fmt.Errorf("unsupported distance method: %q", s)
}
