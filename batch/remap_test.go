package batch

import (
	"image"
	"image/color"
	"image/gif"
	"testing"

	"recolor/cielab"
	"recolor/match"
	"recolor/theme"
)

func testResolver(t *testing.T, colors ...color.RGBA) *match.Resolver {
	t.Helper()
	v := theme.Variation{Name: "test"}
	for _, c := range colors {
		v.Colors = append(v.Colors, theme.NamedColor{RGB: c})
	}
	idx, err := match.NewIndex(v)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return match.NewResolver(idx, cielab.DE2000)
}

func TestRemapMapsEveryPixel(t *testing.T) {
	black := color.RGBA{0, 0, 0, 0xFF}
	white := color.RGBA{255, 255, 255, 0xFF}
	res := testResolver(t, black, white)

	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(0)
			if (x+y)%2 == 1 {
				v = 250
			}
			src.SetNRGBA(x, y, color.NRGBA{v, v, v, 0xFF})
		}
	}

	dst := Remap(src, res)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got := dst.NRGBAAt(x, y)
			want := black
			if (x+y)%2 == 1 {
				want = white
			}
			if got.R != want.R || got.G != want.G || got.B != want.B {
				t.Fatalf("pixel (%d,%d) = %+v, expected %+v", x, y, got, want)
			}
		}
	}
}

func TestRemapPreservesAlpha(t *testing.T) {
	res := testResolver(t, color.RGBA{0, 0, 0, 0xFF})

	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 0})
	src.SetNRGBA(1, 0, color.NRGBA{200, 100, 50, 128})
	src.SetNRGBA(2, 0, color.NRGBA{200, 100, 50, 255})

	dst := Remap(src, res)
	for x, want := range []uint8{0, 128, 255} {
		if got := dst.NRGBAAt(x, 0).A; got != want {
			t.Fatalf("pixel %d alpha = %d, expected %d", x, got, want)
		}
	}
}

func TestRemapNonNRGBASource(t *testing.T) {
	res := testResolver(t, color.RGBA{0, 0, 0, 0xFF}, color.RGBA{255, 255, 255, 0xFF})

	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{10, 10, 10, 0xFF})
	src.SetRGBA(1, 0, color.RGBA{240, 240, 240, 0xFF})

	dst := Remap(src, res)
	if got := dst.NRGBAAt(0, 0); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Fatalf("dark pixel mapped to %+v", got)
	}
	if got := dst.NRGBAAt(1, 0); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Fatalf("light pixel mapped to %+v", got)
	}
}

func TestRemapMatchesSerialReference(t *testing.T) {
	palette := []color.RGBA{
		{0x28, 0x28, 0x28, 0xFF},
		{0xEB, 0xDB, 0xB2, 0xFF},
		{0xCC, 0x24, 0x1D, 0xFF},
		{0x45, 0x85, 0x88, 0xFF},
	}
	res := testResolver(t, palette...)

	src := image.NewNRGBA(image.Rect(0, 0, 31, 17))
	for y := 0; y < 17; y++ {
		for x := 0; x < 31; x++ {
			src.SetNRGBA(x, y, color.NRGBA{uint8(x * 8), uint8(y * 15), uint8(x*y) % 255, 0xFF})
		}
	}

	dst := Remap(src, res)

	serial := testResolver(t, palette...)
	for y := 0; y < 17; y++ {
		for x := 0; x < 31; x++ {
			px := src.NRGBAAt(x, y)
			want := serial.Resolve(px.R, px.G, px.B)
			got := dst.NRGBAAt(x, y)
			if got.R != want.R || got.G != want.G || got.B != want.B {
				t.Fatalf("pixel (%d,%d) = %+v, expected %+v", x, y, got, want)
			}
		}
	}
}

func TestRemapGIF(t *testing.T) {
	blue := color.RGBA{0, 0, 255, 0xFF}
	res := testResolver(t, blue)

	frame := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
		color.NRGBA{0, 0, 0, 0},        // transparent index
		color.NRGBA{200, 30, 30, 0xFF}, // will map to blue
	})
	g := &gif.GIF{
		Image:     []*image.Paletted{frame},
		Delay:     []int{12},
		LoopCount: 3,
	}

	RemapGIF(g, res)

	if got := g.Image[0].Palette[0].(color.NRGBA); got.A != 0 {
		t.Fatalf("transparent palette entry changed: %+v", got)
	}
	mapped := g.Image[0].Palette[1].(color.NRGBA)
	if mapped.R != 0 || mapped.G != 0 || mapped.B != 255 || mapped.A != 0xFF {
		t.Fatalf("opaque palette entry = %+v, expected blue", mapped)
	}
	if g.Delay[0] != 12 || g.LoopCount != 3 {
		t.Fatalf("animation metadata changed: %+v", g)
	}
}
