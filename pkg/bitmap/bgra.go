package bitmap

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// BytesPerPixel of a BGRA framebuffer.
const BytesPerPixel = 4

func pixelBufferLength(r image.Rectangle) int {
	return BytesPerPixel * r.Dx() * r.Dy()
}

func NewBGRA(r image.Rectangle) *BGRA {
	return &BGRA{
		pixels: make([]byte, pixelBufferLength(r)),
		stride: BytesPerPixel * r.Dx(),
		bounds: r,
	}
}

// FromBytes wraps a raw framebuffer dump without copying it.
func FromBytes(pix []byte, r image.Rectangle) (*BGRA, error) {
	if want := pixelBufferLength(r); len(pix) != want {
		return nil, errors.Errorf("framebuffer is %d bytes, %dx%d needs %d", len(pix), r.Dx(), r.Dy(), want)
	}
	return &BGRA{
		pixels: pix,
		stride: BytesPerPixel * r.Dx(),
		bounds: r,
	}, nil
}

// BGRA is a framebuffer as the display controller stores it: one 4-byte
// group per pixel, blue first, alpha last. It implements draw.Image.
type BGRA struct {
	pixels []byte
	stride int
	bounds image.Rectangle
}

func (d *BGRA) Bounds() image.Rectangle {
	return d.bounds
}

func (d *BGRA) ColorModel() color.Model {
	return color.NRGBAModel
}

// Pix returns the raw bytes in wire order.
func (d *BGRA) Pix() []byte {
	return d.pixels
}

func (d *BGRA) offset(x, y int) int {
	return (y-d.bounds.Min.Y)*d.stride + (x-d.bounds.Min.X)*BytesPerPixel
}

func (d *BGRA) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(d.bounds)) {
		return color.NRGBA{}
	}
	i := d.offset(x, y)
	return color.NRGBA{R: d.pixels[i+2], G: d.pixels[i+1], B: d.pixels[i], A: d.pixels[i+3]}
}

func (d *BGRA) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(d.bounds)) {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := d.offset(x, y)
	d.pixels[i] = n.B
	d.pixels[i+1] = n.G
	d.pixels[i+2] = n.R
	d.pixels[i+3] = n.A
}
