package tilecore

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is applied to a draw call.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorMagenta marks objects drawn without a sprite.
var ColorMagenta = Color{1, 0, 1, 1}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R) * a * 255),
		G: uint8(clamp01(c.G) * a * 255),
		B: uint8(clamp01(c.B) * a * 255),
		A: uint8(a * 255),
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// WhitePixel is a 1x1 white image used for solid color rectangles.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(color.White)
}

// fillRect draws a solid rectangle by scaling WhitePixel.
func fillRect(target *ebiten.Image, x, y, w, h float32, c Color) {
	if target == nil || w <= 0 || h <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c.RGBA())
	target.DrawImage(WhitePixel, &op)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float32
}

// RectAt builds the rectangle occupied by a box of size w x h whose top-left
// corner is pos.
func RectAt(pos Vector2D, w, h int) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: float32(w), Height: float32(h)}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Overlaps reports whether r and other share interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vector2D {
	return Vector2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Overlap reports whether the box at aPos (aw x ah) and the box at bPos
// (bw x bh) overlap. All four comparisons are strict.
func Overlap(aPos Vector2D, aw, ah int, bPos Vector2D, bw, bh int) bool {
	return RectAt(aPos, aw, ah).Overlaps(RectAt(bPos, bw, bh))
}

// Direction is the facing of an actor. Each direction maps to one row of the
// actor's walk sheet.
type Direction uint8

const (
	DirectionUp    Direction = iota // sheet row 0
	DirectionRight                  // sheet row 1
	DirectionDown                   // sheet row 2
	DirectionLeft                   // sheet row 3
)

// SheetRow returns the walk-sheet row holding this direction's frames.
func (d Direction) SheetRow() int {
	return int(d)
}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionRight:
		return "right"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Element is the elemental attunement an actor carries. Doors and barriers
// may block or admit movers depending on it.
type Element uint8

const (
	ElementNone Element = iota
	ElementFire
	ElementWater
	ElementEarth
	ElementAir
)

func (e Element) String() string {
	switch e {
	case ElementNone:
		return "none"
	case ElementFire:
		return "fire"
	case ElementWater:
		return "water"
	case ElementEarth:
		return "earth"
	case ElementAir:
		return "air"
	default:
		return "unknown"
	}
}

// GlowColor is the aura drawn around an actor attuned to e.
func (e Element) GlowColor() Color {
	switch e {
	case ElementFire:
		return Color{1, 0.39, 0.08, 1}
	case ElementWater:
		return Color{0.12, 0.55, 1, 1}
	case ElementEarth:
		return Color{0.55, 0.35, 0.12, 1}
	case ElementAir:
		return Color{0.78, 0.94, 1, 1}
	default:
		return Color{}
	}
}
