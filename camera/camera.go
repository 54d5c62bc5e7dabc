// Package camera provides a smoothed 2D follow camera over a circular galaxy.
package camera

import "math"

// Camera controls the viewport into the galaxy.
// The world origin is the galaxy centre; there is no wrapping.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float64

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Follow smoothing per nominal tick
	Smoothing float64

	MinZoom, MaxZoom float64
}

// New creates a camera at the origin with 1:1 zoom.
func New(viewportW, viewportH, smoothing float64) *Camera {
	return &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		Smoothing: smoothing,
		MinZoom:   0.25,
		MaxZoom:   4.0,
	}
}

// Follow eases the camera toward (tx, ty): cam += (t - cam) * smoothing * dt.
func (c *Camera) Follow(tx, ty, dt float64) {
	k := c.Smoothing * dt
	c.X += (tx - c.X) * k
	c.Y += (ty - c.Y) * k
}

// Snap moves the camera onto (x, y) immediately.
func (c *Camera) Snap(x, y float64) {
	c.X, c.Y = x, y
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(wx-c.X) <= halfW && math.Abs(wy-c.Y) <= halfH
}

// EdgeIndicator returns where an off-screen point's arrow sits on the screen
// border, inset by margin, and the arrow angle. ok is false when the point is
// on screen (with a 10 pixel allowance).
func (c *Camera) EdgeIndicator(wx, wy, margin float64) (ex, ey, angle float64, ok bool) {
	sx, sy := c.WorldToScreen(wx, wy)
	if sx > -10 && sx < c.ViewportW+10 && sy > -10 && sy < c.ViewportH+10 {
		return 0, 0, 0, false
	}
	angle = math.Atan2(sy-c.ViewportH/2, sx-c.ViewportW/2)
	ex = c.ViewportW/2 + math.Cos(angle)*(c.ViewportW/2-margin)
	ey = c.ViewportH/2 + math.Sin(angle)*(c.ViewportH/2-margin)
	return ex, ey, angle, true
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, zoom))
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}
