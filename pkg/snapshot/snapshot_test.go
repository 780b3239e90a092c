package snapshot

import (
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func solid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSavePNG(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := New(fs, zap.NewNop())

	require.NoError(t, w.Save("out/screenshot.png", solid(color.NRGBA{R: 10, G: 20, B: 30, A: 255})))

	f, err := fs.Open("out/screenshot.png")
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())

	r, g, b, a := img.At(3, 2).RGBA()
	assert.Equal(t, []uint32{10, 20, 30, 255}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})

	entries, err := afero.ReadDir(fs, "out")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "screenshot.png", []byte("old"), 0644))

	w := New(fs, zap.NewNop())
	require.NoError(t, w.Save("screenshot.png", solid(color.NRGBA{A: 255})))

	bs, err := afero.ReadFile(fs, "screenshot.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), bs[:4])
}

func TestSaveUnknownFormat(t *testing.T) {
	w := New(afero.NewMemMapFs(), zap.NewNop())
	assert.Error(t, w.Save("screenshot.raw", solid(color.NRGBA{})))
}
