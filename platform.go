package tilecore

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// DefaultPlatformPriority is checked before doors and other blockers at the
// default priority of 0.
const DefaultPlatformPriority = 10

// Rider is something a MovingPlatform can carry.
type Rider interface {
	Positioned
	SetPosition(x, y float32)
}

// MovingPlatform is a solid box that travels back and forth between two
// points. Riders standing on top are carried along with it; carrying does
// not consult the collision checker.
type MovingPlatform struct {
	position Vector2D
	width    int
	height   int
	priority int
	motion   *Yoyo
	riders   []Rider

	Image *ebiten.Image
	Color Color
}

// NewMovingPlatform creates a w x h platform that moves from a to b and back,
// taking frames update frames per leg.
func NewMovingPlatform(a, b Vector2D, w, h int, frames float32) *MovingPlatform {
	p := &MovingPlatform{
		width:    w,
		height:   h,
		priority: DefaultPlatformPriority,
		Color:    Color{0.5, 0.5, 0.55, 1},
	}
	p.motion = NewYoyo(&p.position, a, b, frames, ease.InOutSine)
	return p
}

// AddRider lets r be carried when it stands on the platform.
func (p *MovingPlatform) AddRider(r Rider) {
	p.riders = append(p.riders, r)
}

// Update advances the platform by dt frames and carries its riders.
func (p *MovingPlatform) Update(dt float64) {
	before := p.position
	var standing []Rider
	for _, r := range p.riders {
		if p.supports(r) {
			standing = append(standing, r)
		}
	}

	p.motion.Update(float32(dt))

	delta := p.position
	delta.Sub(before)
	if delta.Length() == 0 {
		return
	}
	for _, r := range standing {
		pos := r.Position()
		r.SetPosition(pos.X+delta.X, pos.Y+delta.Y)
	}
}

// supports reports whether r stands on the platform's top edge.
func (p *MovingPlatform) supports(r Rider) bool {
	pos := r.Position()
	w, h := r.Size()
	if pos.X+float32(w) <= p.position.X || pos.X >= p.position.X+float32(p.width) {
		return false
	}
	bottom := pos.Y + float32(h)
	return bottom > p.position.Y-2 && bottom <= p.position.Y+0.5
}

// SolidAt implements Collidable: the platform blocks every overlapping mover.
func (p *MovingPlatform) SolidAt(pos Vector2D, w, h int, ctx CollisionContext) bool {
	return Overlap(pos, w, h, p.position, p.width, p.height)
}

// CollisionPriority implements Prioritized.
func (p *MovingPlatform) CollisionPriority() int { return p.priority }

// Position returns the platform's current top-left corner.
func (p *MovingPlatform) Position() Vector2D { return p.position }

// Size returns the platform's size in pixels.
func (p *MovingPlatform) Size() (w, h int) { return p.width, p.height }

// Draw renders the platform.
func (p *MovingPlatform) Draw(target *ebiten.Image) {
	if p.Image != nil {
		b := p.Image.Bounds()
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(p.width)/float64(b.Dx()), float64(p.height)/float64(b.Dy()))
		op.GeoM.Translate(float64(p.position.X), float64(p.position.Y))
		target.DrawImage(p.Image, &op)
		return
	}
	fillRect(target, p.position.X, p.position.Y, float32(p.width), float32(p.height), p.Color)
}
