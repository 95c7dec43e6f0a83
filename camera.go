package tilecore

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Camera chooses which part of the world is shown. It centres on (X, Y) in
// world pixels, optionally following a target and staying inside Bounds.
// Register it with the scene after the actor it follows.
type Camera struct {
	// X and Y are the world position the camera centres on.
	X, Y float32
	// Zoom is the scale factor (1 = no zoom, >1 = zoom in).
	Zoom float32
	// Width and Height are the size of the screen area the camera fills.
	Width, Height float32

	// BoundsEnabled clamps the camera so the visible area stays within
	// Bounds.
	BoundsEnabled bool
	Bounds        Rect

	target Positioned
	lerp   float32

	scroll *TweenGroup
}

// NewCamera creates a camera filling a w x h screen area.
func NewCamera(w, h int) *Camera {
	return &Camera{Zoom: 1, Width: float32(w), Height: float32(h)}
}

// Follow makes the camera track the centre of target. A lerp of 1 snaps;
// lower values trail behind.
func (c *Camera) Follow(target Positioned, lerp float32) {
	c.target = target
	c.lerp = lerp
}

// Unfollow stops tracking the target.
func (c *Camera) Unfollow() { c.target = nil }

// ScrollTo animates the camera to (x, y) over duration frames. Following is
// suspended while the scroll runs.
func (c *Camera) ScrollTo(x, y float32, duration float32, fn ease.TweenFunc) {
	c.scroll = &TweenGroup{}
	c.scroll.add(c.X, x, duration, fn, func(v float32) { c.X = v })
	c.scroll.add(c.Y, y, duration, fn, func(v float32) { c.Y = v })
}

// ScrollToTile scrolls to the centre of a tile.
func (c *Camera) ScrollToTile(col, row, tileSize int, duration float32, fn ease.TweenFunc) {
	half := float32(tileSize) / 2
	c.ScrollTo(float32(col*tileSize)+half, float32(row*tileSize)+half, duration, fn)
}

// SetBounds enables clamping to bounds.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables clamping.
func (c *Camera) ClearBounds() { c.BoundsEnabled = false }

// Update implements Updatable.
func (c *Camera) Update(dt float64) {
	switch {
	case c.scroll != nil:
		c.scroll.Update(float32(dt))
		if c.scroll.Done {
			c.scroll = nil
		}
	case c.target != nil:
		pos := c.target.Position()
		w, h := c.target.Size()
		center := RectAt(pos, w, h).Center()
		c.X += (center.X - c.X) * c.lerp
		c.Y += (center.Y - c.Y) * c.lerp
	}
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts the position so the visible area stays within
// Bounds. Bounds smaller than the view centre the camera on them.
func (c *Camera) clampToBounds() {
	halfW := c.Width / (2 * c.Zoom)
	halfH := c.Height / (2 * c.Zoom)

	minX, maxX := c.Bounds.X+halfW, c.Bounds.X+c.Bounds.Width-halfW
	minY, maxY := c.Bounds.Y+halfH, c.Bounds.Y+c.Bounds.Height-halfH

	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = max(minX, min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = max(minY, min(c.Y, maxY))
	}
}

// GeoM returns the world-to-screen transform.
func (c *Camera) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-float64(c.X), -float64(c.Y))
	m.Scale(float64(c.Zoom), float64(c.Zoom))
	m.Translate(float64(c.Width)/2, float64(c.Height)/2)
	return m
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	m := c.GeoM()
	x, y := m.Apply(float64(wx), float64(wy))
	return float32(x), float32(y)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	m := c.GeoM()
	m.Invert()
	x, y := m.Apply(float64(sx), float64(sy))
	return float32(x), float32(y)
}

// VisibleBounds returns the world rectangle the camera shows.
func (c *Camera) VisibleBounds() Rect {
	w, h := c.Width/c.Zoom, c.Height/c.Zoom
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}
