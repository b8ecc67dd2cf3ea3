package imgproc

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
)

type HSV struct {
	H uint32  // 0 <= H < 360
	S float64 // 0 <= S <= 1
	V float64 // 0 <= V <= 1
}

// Direction of a hue rotation around the color wheel.
type Direction string

const (
	CW  Direction = "cw"
	CCW Direction = "ccw"
)

// Rotates the hue `H` by a number of `degrees` in the given `direction`. Direction is either `cw` or `ccw`
func (color *HSV) RotateHue(degrees uint32, direction Direction) {
	degrees %= 360
	switch direction {
	case CW:
		color.H = (color.H + degrees) % 360
	case CCW:
		color.H = (color.H + 360 - degrees) % 360
	default:
		panic(fmt.Sprintf("unknown direction: %q", string(direction)))
	}
}

// Converts an HSV color to RGBA, where `A` is implicitly set to 255 (solid)
func (col HSV) RGBA() color.RGBA {
	h := float64(col.H % 360)
	c := col.V * col.S
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := col.V - c

	var rp, gp, bp float64 // R' G' B'
	switch {
	case h < 60:
		rp, gp, bp = c, x, 0
	case h < 120:
		rp, gp, bp = x, c, 0
	case h < 180:
		rp, gp, bp = 0, c, x
	case h < 240:
		rp, gp, bp = 0, x, c
	case h < 300:
		rp, gp, bp = x, 0, c
	default:
		rp, gp, bp = c, 0, x
	}

	r := uint8(math.Round((rp + m) * 255))
	g := uint8(math.Round((gp + m) * 255))
	b := uint8(math.Round((bp + m) * 255))

	return color.RGBA{r, g, b, 255}
}

// Palette returns n random box colors. Hues are spread evenly around the
// wheel from a random start so that neighbouring objects stay distinguishable.
func Palette(n int, seed int64) []color.RGBA {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	step := uint32(360 / n)
	if step == 0 {
		step = 1
	}

	hsv := HSV{H: uint32(rng.Intn(360))}
	colors := make([]color.RGBA, n)
	for i := range colors {
		hsv.S = 0.6 + 0.4*rng.Float64()
		hsv.V = 0.75 + 0.25*rng.Float64()
		colors[i] = hsv.RGBA()
		hsv.RotateHue(step, CW)
	}
	return colors
}
