package batch

import (
	"image"
	"image/color"
	"image/gif"

	"recolor/match"
	"recolor/parallel"
)

// Remap produces a new buffer of the same dimensions with every pixel's
// color channels replaced by the resolver's nearest palette color. Alpha is
// carried through untouched. Rows are mapped in parallel chunks sharing the
// resolver's cache; because each pixel resolves independently and ties break
// deterministically, the output is bit-identical for any chunk count.
func Remap(img image.Image, res *match.Resolver) *image.NRGBA {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	src, _ := img.(*image.NRGBA)

	parallel.Chunks(height, 0, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			for x := 0; x < width; x++ {
				var px color.NRGBA
				if src != nil {
					i := src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
					px = color.NRGBA{src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]}
				} else {
					px = color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				}

				mapped := res.Resolve(px.R, px.G, px.B)
				o := dst.PixOffset(x, y)
				dst.Pix[o+0] = mapped.R
				dst.Pix[o+1] = mapped.G
				dst.Pix[o+2] = mapped.B
				dst.Pix[o+3] = px.A
			}
		}
	})

	return dst
}

// RemapGIF recolors an animated GIF in place. Frames are paletted, so
// mapping the palette entries of each frame recolors every pixel while
// keeping frame timing, disposal and loop metadata untouched. Fully
// transparent entries stay transparent.
func RemapGIF(g *gif.GIF, res *match.Resolver) {
	for _, frame := range g.Image {
		for i, entry := range frame.Palette {
			px := color.NRGBAModel.Convert(entry).(color.NRGBA)
			if px.A == 0 {
				continue
			}
			mapped := res.Resolve(px.R, px.G, px.B)
			frame.Palette[i] = color.NRGBA{R: mapped.R, G: mapped.G, B: mapped.B, A: px.A}
		}
	}
}
