package bitmap

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int) []byte {
	bs := make([]byte, n)
	for i := range bs {
		bs[i] = byte(i * 7)
	}
	return bs
}

func TestFromBytesLength(t *testing.T) {
	r := image.Rect(0, 0, 4, 3)

	_, err := FromBytes(make([]byte, 47), r)
	assert.Error(t, err)

	_, err = FromBytes(make([]byte, 52), r)
	assert.Error(t, err)

	b, err := FromBytes(make([]byte, 48), r)
	require.NoError(t, err)
	assert.Equal(t, r, b.Bounds())
}

func TestDecodeSwapsChannels(t *testing.T) {
	r := image.Rect(0, 0, 5, 3)
	in := sequence(pixelBufferLength(r))

	src, err := FromBytes(in, r)
	require.NoError(t, err)

	out := Decode(src)
	require.Equal(t, r, out.Bounds())

	for i := 0; i < r.Dx()*r.Dy(); i++ {
		x, y := i%r.Dx(), i/r.Dx()
		want := color.NRGBA{R: in[4*i+2], G: in[4*i+1], B: in[4*i], A: in[4*i+3]}
		assert.Equal(t, want, out.NRGBAAt(x, y), "pixel %d", i)
		assert.Equal(t, want, src.At(x, y), "pixel %d", i)
	}
}

func TestAtOutOfBounds(t *testing.T) {
	b := NewBGRA(image.Rect(0, 0, 2, 2))
	assert.Equal(t, color.NRGBA{}, b.At(2, 0))
	assert.Equal(t, color.NRGBA{}, b.At(-1, 1))
}

func TestEncodeIsWireOrder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff})
	img.SetNRGBA(1, 0, color.NRGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0x80})

	bs := Encode(img)
	assert.Equal(t, []byte{0x33, 0x22, 0x11, 0xff, 0xcc, 0xbb, 0xaa, 0x80}, bs)

	src, err := FromBytes(bs, img.Bounds())
	require.NoError(t, err)
	assert.Equal(t, img.Pix, Decode(src).Pix)
}

func TestSetOffsetBounds(t *testing.T) {
	b := NewBGRA(image.Rect(10, 20, 12, 22))
	b.Set(11, 21, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	b.Set(0, 0, color.NRGBA{R: 9, G: 9, B: 9, A: 9})

	assert.Equal(t, []byte{3, 2, 1, 4}, b.Pix()[12:16])
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 4}, b.At(11, 21))
}
