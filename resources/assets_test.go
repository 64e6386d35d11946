package resources

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrayIconIsPNG(t *testing.T) {
	for _, paused := range []bool{false, true} {
		icon := TrayIcon(paused)
		require.NotNil(t, icon)

		img, err := png.Decode(bytes.NewReader(icon.Content()))
		require.NoError(t, err)
		assert.Equal(t, iconSize, img.Bounds().Dx())
		assert.Equal(t, iconSize, img.Bounds().Dy())
	}
}

func TestTrayIconVariants(t *testing.T) {
	active := TrayIcon(false)
	paused := TrayIcon(true)

	assert.NotEqual(t, active.Name(), paused.Name())
	assert.NotEqual(t, active.Content(), paused.Content())
	assert.Same(t, active, TrayIcon(false))
}

func TestDrawEyeLayout(t *testing.T) {
	img := drawEye(iconSize, activePalette)
	center := iconSize / 2

	assert.Equal(t, activePalette.pupil, img.NRGBAAt(center, center))
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), img.NRGBAAt(center, 2).A)
}
