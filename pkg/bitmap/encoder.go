package bitmap

import (
	"image"
)

// Decode reorders the framebuffer into an RGBA image: byte 4i+2 becomes red,
// 4i+1 green, 4i blue and 4i+3 alpha.
func Decode(src *BGRA) *image.NRGBA {
	dst := image.NewNRGBA(src.bounds)
	in, out := src.pixels, dst.Pix

	for i := 0; i+BytesPerPixel <= len(in); i += BytesPerPixel {
		out[i] = in[i+2]
		out[i+1] = in[i+1]
		out[i+2] = in[i]
		out[i+3] = in[i+3]
	}

	return dst
}

// Encode lays out any image in framebuffer byte order.
func Encode(src image.Image) []byte {
	b := src.Bounds()
	d := NewBGRA(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d.Set(x, y, src.At(x, y))
		}
	}

	return d.pixels
}
