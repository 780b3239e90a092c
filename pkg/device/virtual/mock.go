package virtual

import (
	"context"
	"image"
	"image/color"

	"go.uber.org/zap"

	"screengrab/pkg/bitmap"
	"screengrab/pkg/proto"
)

// Mock is a grabber that needs no hardware and always returns Pattern.
func Mock(logger *zap.Logger, width, height int) proto.Grabber {
	return &Mocker{l: logger, bounds: image.Rect(0, 0, width, height)}
}

type Mocker struct {
	l      *zap.Logger
	bounds image.Rectangle
}

func (m *Mocker) Capture(ctx context.Context) (*bitmap.BGRA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.l.With(zap.Int("w", m.bounds.Dx()), zap.Int("h", m.bounds.Dy())).Info("capture")
	return bitmap.FromBytes(Pattern(m.bounds.Dx(), m.bounds.Dy()), m.bounds)
}

func (m *Mocker) Close() error {
	m.l.Info("close")
	return nil
}

// Pattern is a gradient in framebuffer byte order: red grows along x,
// green along y, blue is constant and alpha opaque.
func Pattern(width, height int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: byte(x * 255 / max(width-1, 1)),
				G: byte(y * 255 / max(height-1, 1)),
				B: 0x40,
				A: 0xff,
			})
		}
	}
	return bitmap.Encode(img)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
