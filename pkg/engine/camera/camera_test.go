package camera

import (
	"math"
	"testing"
)

func TestCamera_PanOnlyWhileHeld(t *testing.T) {
	c := New()
	c.Pan(10, 5, false)
	if c.Translation != (Vec2{}) {
		t.Fatalf("Translation = %+v after unheld pan, want zero", c.Translation)
	}
	c.Pan(10, 5, true)
	c.Pan(2, -1, true)
	want := Vec2{X: -12, Y: 4}
	if c.Translation != want {
		t.Errorf("Translation = %+v, want %+v", c.Translation, want)
	}
	if c.Scale != 1 {
		t.Errorf("Scale changed by pan: %v", c.Scale)
	}
}

func TestCamera_ZoomClamps(t *testing.T) {
	cases := []struct {
		name   string
		scroll []float64
	}{
		{"far in", []float64{1000}},
		{"far out", []float64{-1000}},
		{"many small in", repeat(1, 500)},
		{"many small out", repeat(-1, 500)},
		{"alternating", []float64{-300, 250, -0.5, 90, -1e9, 1e9}},
		{"fractional", []float64{0.25, 0.25, -3.7, 12.5}},
		{"not a number", []float64{math.NaN(), 1, math.NaN()}},
		{"infinite", []float64{math.Inf(1), math.Inf(-1), 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			for _, s := range tc.scroll {
				c.Zoom(s)
				if c.Scale < MinScale || c.Scale > MaxScale {
					t.Fatalf("Scale = %v outside [%v,%v] after scroll %v", c.Scale, MinScale, MaxScale, s)
				}
			}
		})
	}
}

func TestCamera_ZoomStep(t *testing.T) {
	c := New()
	c.Zoom(1)
	if math.Abs(c.Scale-0.9) > 1e-9 {
		t.Errorf("Scale = %v after one notch in, want 0.9", c.Scale)
	}
	c.Zoom(-2)
	if math.Abs(c.Scale-1.1) > 1e-9 {
		t.Errorf("Scale = %v after two notches out, want 1.1", c.Scale)
	}
	if c.Translation != (Vec2{}) {
		t.Errorf("zoom changed Translation: %+v", c.Translation)
	}
}

func TestCamera_ZoomIgnoresNaN(t *testing.T) {
	c := New()
	c.Zoom(2)
	before := c.Scale
	c.Zoom(math.NaN())
	if c.Scale != before {
		t.Errorf("Scale = %v after NaN scroll, want %v", c.Scale, before)
	}
}

func TestCamera_PanAndZoomIndependent(t *testing.T) {
	c := New()
	c.Pan(4, 4, true)
	c.Zoom(-5)
	c.Pan(1, 1, true)
	if c.Translation != (Vec2{X: -5, Y: 5}) {
		t.Errorf("Translation = %+v", c.Translation)
	}
	if math.Abs(c.Scale-1.5) > 1e-9 {
		t.Errorf("Scale = %v, want 1.5", c.Scale)
	}
}

func TestCamera_ProjectionRoundTrip(t *testing.T) {
	c := New()
	c.Focus(100, -50)
	c.Zoom(-10) // scale 2
	sx, sy := c.WorldToScreen(100, -50, 800, 600)
	if sx != 400 || sy != 300 {
		t.Errorf("focused point at (%v,%v), want viewport centre", sx, sy)
	}
	sx, sy = c.WorldToScreen(120, -40, 800, 600)
	if math.Abs(sx-410) > 1e-9 || math.Abs(sy-295) > 1e-9 {
		t.Errorf("WorldToScreen = (%v,%v), want (410,295)", sx, sy)
	}
	x, y := c.ScreenToWorld(sx, sy, 800, 600)
	if math.Abs(x-120) > 1e-9 || math.Abs(y+40) > 1e-9 {
		t.Errorf("ScreenToWorld = (%v,%v), want (120,-40)", x, y)
	}
}

func TestCamera_Reset(t *testing.T) {
	c := New()
	c.Pan(3, 3, true)
	c.Zoom(4)
	c.Reset()
	if c.Translation != (Vec2{}) || c.Scale != 1 {
		t.Errorf("after Reset: %+v", c)
	}
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
