package main

import (
	"context"
	"image/color"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"screengrab/pkg/device/discovery"
	"screengrab/pkg/device/virtual"
)

func TestRunVirtual(t *testing.T) {
	oldSerial, oldOutput := *serial, *output
	t.Cleanup(func() {
		*serial, *output = oldSerial, oldOutput
	})
	*serial = "virtual"
	*output = "screenshot.png"

	fs := afero.NewMemMapFs()
	require.NoError(t, run(context.Background(), zap.NewNop(), fs))

	f, err := fs.Open("screenshot.png")
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, discovery.Width, img.Bounds().Dx())
	require.Equal(t, discovery.Height, img.Bounds().Dy())

	in := virtual.Pattern(discovery.Width, discovery.Height)
	for _, i := range []int{0, discovery.Width - 1, 4242, discovery.Width*discovery.Height - 1} {
		x, y := i%discovery.Width, i/discovery.Width
		want := color.NRGBA{R: in[4*i+2], G: in[4*i+1], B: in[4*i], A: in[4*i+3]}
		assert.Equal(t, want, color.NRGBAModel.Convert(img.At(x, y)), "pixel %d", i)
	}
}
