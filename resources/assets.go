package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"fyne.io/fyne/v2"
)

const iconSize = 64

var (
	activePalette = palette{
		outline: color.NRGBA{R: 0x1f, G: 0x6f, B: 0xb2, A: 0xff},
		iris:    color.NRGBA{R: 0x2e, G: 0xa0, B: 0x6b, A: 0xff},
		pupil:   color.NRGBA{R: 0x10, G: 0x1a, B: 0x24, A: 0xff},
		sclera:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
	pausedPalette = palette{
		outline: color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		iris:    color.NRGBA{R: 0xa8, G: 0xa8, B: 0xa8, A: 0xff},
		pupil:   color.NRGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xff},
		sclera:  color.NRGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff},
	}
)

var iconCache sync.Map

type palette struct {
	outline color.NRGBA
	iris    color.NRGBA
	pupil   color.NRGBA
	sclera  color.NRGBA
}

// TrayIcon returns the eye icon, dimmed while reminders are paused.
func TrayIcon(paused bool) fyne.Resource {
	name, colors := "eyecare.png", activePalette
	if paused {
		name, colors = "eyecare_paused.png", pausedPalette
	}
	resource, err := loadResource(name, colors)
	if err != nil {
		panic(err)
	}
	return resource
}

func loadResource(name string, colors palette) (fyne.Resource, error) {
	if cached, ok := iconCache.Load(name); ok {
		return cached.(fyne.Resource), nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, drawEye(iconSize, colors)); err != nil {
		return nil, fmt.Errorf("encode icon %s: %w", name, err)
	}

	resource := fyne.NewStaticResource(name, buf.Bytes())
	iconCache.Store(name, resource)
	return resource, nil
}

// drawEye renders an almond-shaped eye with an iris and pupil on a transparent background.
func drawEye(size int, colors palette) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	center := float64(size-1) / 2
	halfWidth := float64(size) * 0.46
	halfHeight := float64(size) * 0.28
	outline := float64(size) * 0.05
	irisRadius := float64(size) * 0.17
	pupilRadius := float64(size) * 0.07

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			if math.Abs(dx) > halfWidth {
				continue
			}
			// The lid edge follows a cosine so both corners come to a point.
			lid := halfHeight * math.Cos(dx/halfWidth*math.Pi/2)
			dist := math.Hypot(dx, dy)
			switch {
			case math.Abs(dy) > lid:
				continue
			case math.Abs(dy) > lid-outline:
				img.SetNRGBA(x, y, colors.outline)
			case dist <= pupilRadius:
				img.SetNRGBA(x, y, colors.pupil)
			case dist <= irisRadius:
				img.SetNRGBA(x, y, colors.iris)
			default:
				img.SetNRGBA(x, y, colors.sclera)
			}
		}
	}
	return img
}
