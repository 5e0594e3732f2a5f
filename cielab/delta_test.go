package cielab

import (
	"math"
	"testing"
)

var allMethods = []Method{DE2000, DE1994G, DE1994T, DE1976}

func TestDistanceZeroForEqualColors(t *testing.T) {
	colors := [][3]uint8{
		{0, 0, 0},
		{255, 255, 255},
		{255, 0, 0},
		{18, 52, 86},
		{128, 128, 128},
	}

	for _, m := range allMethods {
		dist := m.Distance()
		for _, c := range colors {
			lab := FromRGB(c[0], c[1], c[2])
			if d := dist(lab, lab); d != 0 {
				t.Fatalf("%s: distance of %v to itself = %g, expected 0", m, c, d)
			}
		}
	}
}

func TestDistanceNonNegative(t *testing.T) {
	a := FromRGB(200, 30, 40)
	b := FromRGB(10, 220, 180)
	for _, m := range allMethods {
		if d := m.Distance()(a, b); d <= 0 {
			t.Fatalf("%s: distance between distinct colors = %g, expected > 0", m, d)
		}
	}
}

func TestSymmetricMethods(t *testing.T) {
	a := FromRGB(120, 64, 200)
	b := FromRGB(90, 180, 20)

	for _, m := range []Method{DE1976, DE2000} {
		dist := m.Distance()
		ab, ba := dist(a, b), dist(b, a)
		if math.Abs(ab-ba) > 1e-12 {
			t.Fatalf("%s: distance not symmetric: %g vs %g", m, ab, ba)
		}
	}
}

func TestCIE94IsAsymmetric(t *testing.T) {
	// Pick colors with very different chroma so the reference weighting shows.
	a := FromRGB(255, 0, 0)
	b := FromRGB(128, 128, 128)

	ab := DeltaE94Graphics(a, b)
	ba := DeltaE94Graphics(b, a)
	if ab == ba {
		t.Fatalf("expected CIE94 to weigh by reference chroma, got equal distances %g", ab)
	}
}

// Reference pairs from Sharma, Wu & Dalal, "The CIEDE2000 Color-Difference
// Formula: Implementation Notes" (table 1).
func TestCIEDE2000ReferenceValues(t *testing.T) {
	cases := []struct {
		ref, sample Lab
		want        float64
	}{
		{Lab{50, 2.6772, -79.7751}, Lab{50, 0, -82.7485}, 2.0425},
		{Lab{50, 3.1571, -77.2803}, Lab{50, 0, -82.7485}, 2.8615},
		{Lab{50, 2.5, 0}, Lab{50, 0, -2.5}, 4.3065},
		{Lab{50, -1, 2}, Lab{50, 0, 0}, 2.3669},
		{Lab{60.2574, -34.0099, 36.2677}, Lab{60.4626, -34.1751, 39.4387}, 1.2644},
	}

	for i, c := range cases {
		got := DeltaE2000(c.ref, c.sample)
		if math.Abs(got-c.want) > 5e-4 {
			t.Fatalf("case %d: DeltaE2000 = %.4f, expected %.4f", i, got, c.want)
		}
	}
}

func TestFromRGBEndpoints(t *testing.T) {
	black := FromRGB(0, 0, 0)
	if math.Abs(black.L) > 1e-9 || math.Abs(black.A) > 1e-9 || math.Abs(black.B) > 1e-9 {
		t.Fatalf("black should convert to the Lab origin, got %+v", black)
	}

	white := FromRGB(255, 255, 255)
	if math.Abs(white.L-100) > 0.01 {
		t.Fatalf("white should have L near 100, got %+v", white)
	}
	if math.Abs(white.A) > 0.01 || math.Abs(white.B) > 0.01 {
		t.Fatalf("white should be neutral, got %+v", white)
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range allMethods {
		got, err := ParseMethod(m.String())
		if err != nil {
			t.Fatalf("could not parse %q back: %v", m, err)
		}
		if got != m {
			t.Fatalf("round trip of %q gave %q", m, got)
		}
	}

	if _, err := ParseMethod("de3000"); err == nil {
		t.Fatal("expected an error for an unknown method name")
	}

	def, err := ParseMethod("")
	if err != nil || def != DE2000 {
		t.Fatalf("empty method should default to de2000, got %q, %v", def, err)
	}
}
