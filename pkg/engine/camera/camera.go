// Package camera holds the pan/zoom state of the 2D view.
package camera

import "math"

// Zoom limits and scroll sensitivity.
const (
	MinScale  = 0.1
	MaxScale  = 5.0
	ZoomStep  = 0.1
	baseScale = 1.0
)

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

// Camera is an orthographic 2D camera. The world is y-up; screen space is
// y-down with the origin at the top-left corner.
//
// Translation and Scale are independent: panning never touches Scale and
// zooming never touches Translation. A larger Scale shows more of the world.
type Camera struct {
	Translation Vec2
	Scale       float64
}

// New returns a camera at the origin with unit scale.
func New() *Camera {
	return &Camera{Scale: baseScale}
}

// Pan applies one pointer-motion delta (screen pixels) while the pan button
// is held. Dragging right moves the view left; Y is not inverted because
// screen Y grows downward while world Y grows upward.
func (c *Camera) Pan(dx, dy float64, held bool) {
	if !held {
		return
	}
	c.Translation.X -= dx
	c.Translation.Y += dy
}

// Zoom applies one scroll-wheel delta. Positive scroll zooms in. A NaN
// delta is ignored so the scale stays within its limits.
func (c *Camera) Zoom(scrollY float64) {
	if math.IsNaN(scrollY) {
		return
	}
	c.Scale -= scrollY * ZoomStep
	c.Scale = clamp(c.Scale, MinScale, MaxScale)
}

// Reset returns the camera to the origin at unit scale.
func (c *Camera) Reset() {
	c.Translation = Vec2{}
	c.Scale = baseScale
}

// Focus centres the view on a world point without changing the scale.
func (c *Camera) Focus(x, y float64) {
	c.Translation = Vec2{X: x, Y: y}
}

// WorldToScreen projects a world point into a viewport of the given size.
func (c *Camera) WorldToScreen(x, y float64, viewW, viewH int) (float64, float64) {
	s := c.scale()
	sx := (x-c.Translation.X)/s + float64(viewW)/2
	sy := float64(viewH)/2 - (y-c.Translation.Y)/s
	return sx, sy
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(sx, sy float64, viewW, viewH int) (float64, float64) {
	s := c.scale()
	x := (sx-float64(viewW)/2)*s + c.Translation.X
	y := (float64(viewH)/2-sy)*s + c.Translation.Y
	return x, y
}

// PixelsPerUnit is the on-screen size of one world unit.
func (c *Camera) PixelsPerUnit() float64 {
	return 1 / c.scale()
}

func (c *Camera) scale() float64 {
	// A zero-value Camera has Scale 0; treat it as the base scale.
	if c.Scale <= 0 {
		return baseScale
	}
	return c.Scale
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
