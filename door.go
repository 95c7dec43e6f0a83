package tilecore

import "github.com/hajimehoshi/ebiten/v2"

// Door is a keyed blocker. It is solid for every mover overlapping it unless
// the mover's collision attribute equals the door's required attribute, or
// the door has been opened.
type Door struct {
	position Vector2D
	width    int
	height   int
	requires Attribute
	open     bool
	priority int

	Image *ebiten.Image // drawn when closed; nil draws a tinted box
	Color Color         // box colour when Image is nil
}

// NewDoor creates a closed w x h door at pos that admits movers carrying
// requires. A door requiring NoAttribute only admits movers without one.
func NewDoor(pos Vector2D, w, h int, requires Attribute) *Door {
	return &Door{
		position: pos,
		width:    w,
		height:   h,
		requires: requires,
		Color:    Color{0.45, 0.3, 0.15, 1},
	}
}

// SolidAt implements Collidable.
func (d *Door) SolidAt(pos Vector2D, w, h int, ctx CollisionContext) bool {
	if d.open {
		return false
	}
	if !Overlap(pos, w, h, d.position, d.width, d.height) {
		return false
	}
	return ctx.Attribute != d.requires
}

// CollisionPriority implements Prioritized.
func (d *Door) CollisionPriority() int { return d.priority }

// SetPriority changes the door's check order. It must be set before the door
// is added to a scene.
func (d *Door) SetPriority(p int) { d.priority = p }

// Requires returns the attribute that passes through the door.
func (d *Door) Requires() Attribute { return d.requires }

// Open makes the door permanently passable until Close.
func (d *Door) Open() { d.open = true }

// Close makes the door block again.
func (d *Door) Close() { d.open = false }

// IsOpen reports whether the door has been opened.
func (d *Door) IsOpen() bool { return d.open }

// Position returns the door's top-left corner.
func (d *Door) Position() Vector2D { return d.position }

// Size returns the door's size in pixels.
func (d *Door) Size() (w, h int) { return d.width, d.height }

// Draw renders the closed door. Open doors draw nothing.
func (d *Door) Draw(target *ebiten.Image) {
	if d.open {
		return
	}
	if d.Image != nil {
		b := d.Image.Bounds()
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(d.width)/float64(b.Dx()), float64(d.height)/float64(b.Dy()))
		op.GeoM.Translate(float64(d.position.X), float64(d.position.Y))
		target.DrawImage(d.Image, &op)
		return
	}
	fillRect(target, d.position.X, d.position.Y, float32(d.width), float32(d.height), d.Color)
}
