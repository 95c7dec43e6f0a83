package tilecore

import (
	"fmt"
	"math"
)

// AttributeKind tags the value carried by an Attribute.
type AttributeKind uint8

const (
	AttrNone    AttributeKind = iota // no attribute; unconditional blockers only
	AttrElement                      // an Element
	AttrKey                          // a named key
	AttrTeam                         // a team id
)

func (k AttributeKind) String() string {
	switch k {
	case AttrNone:
		return "none"
	case AttrElement:
		return "element"
	case AttrKey:
		return "key"
	case AttrTeam:
		return "team"
	default:
		return "unknown"
	}
}

// Attribute is the per-query value a mover carries into collision checks so
// blockers can make conditional decisions ("solid unless you carry the blue
// key"). It is a small closed union; the zero value is NoAttribute. Attributes
// are comparable with ==.
type Attribute struct {
	kind    AttributeKind
	element Element
	key     string
	team    int
}

// NoAttribute is the empty attribute.
var NoAttribute = Attribute{}

// ElementAttr wraps an element.
func ElementAttr(e Element) Attribute {
	return Attribute{kind: AttrElement, element: e}
}

// KeyAttr wraps a key name.
func KeyAttr(name string) Attribute {
	return Attribute{kind: AttrKey, key: name}
}

// TeamAttr wraps a team id.
func TeamAttr(id int) Attribute {
	return Attribute{kind: AttrTeam, team: id}
}

// Kind returns the attribute's tag.
func (a Attribute) Kind() AttributeKind { return a.kind }

// Element returns the wrapped element and whether a holds one.
func (a Attribute) Element() (Element, bool) {
	return a.element, a.kind == AttrElement
}

// Key returns the wrapped key name and whether a holds one.
func (a Attribute) Key() (string, bool) {
	return a.key, a.kind == AttrKey
}

// Team returns the wrapped team id and whether a holds one.
func (a Attribute) Team() (int, bool) {
	return a.team, a.kind == AttrTeam
}

func (a Attribute) String() string {
	switch a.kind {
	case AttrElement:
		return "element:" + a.element.String()
	case AttrKey:
		return "key:" + a.key
	case AttrTeam:
		return fmt.Sprintf("team:%d", a.team)
	default:
		return "none"
	}
}

// Positioned is anything with a top-left position and a pixel size.
type Positioned interface {
	Position() Vector2D
	Size() (w, h int)
}

// CollisionContext travels with every collision query.
type CollisionContext struct {
	Attribute Attribute
	Mover     Positioned // optional; nil when the query is anonymous
}

// Collidable is implemented by objects that can block movement into a region.
type Collidable interface {
	// SolidAt reports whether a mover of size w x h at pos is blocked by this
	// object, given the mover's context.
	SolidAt(pos Vector2D, w, h int, ctx CollisionContext) bool
}

// Prioritized may be implemented by a Collidable to be checked earlier.
// Higher priority is checked first; the default is 0. Priority only orders
// the checks, any single veto still rejects the move.
type Prioritized interface {
	CollisionPriority() int
}

func collisionPriority(c Collidable) int {
	if p, ok := c.(Prioritized); ok {
		return p.CollisionPriority()
	}
	return 0
}

// BlockerSource supplies the dynamic blockers a CollisionChecker consults.
// *Scene implements it.
type BlockerSource interface {
	Collidables() []Collidable
}

// Insets shrink a mover's box before sampling tiles, so sprite edges that only
// visually touch a tile don't collide. Side applies to left and right; Top is
// larger than Bottom to leave head room in the art.
type Insets struct {
	Side   int
	Top    int
	Bottom int
}

// DefaultInsets match 48x64 character art on a 16px-aligned sheet. A Bottom
// of 1 samples the last pixel row the box covers, so a grounded mover's
// bottom edge lies exactly on the floor.
var DefaultInsets = Insets{Side: 8, Top: 16, Bottom: 1}

// CollisionChecker answers whether a box may move to a position, combining
// tile solidity with the scene's dynamic blockers.
type CollisionChecker struct {
	grid     *TileGrid
	blockers BlockerSource

	// Insets applied to the mover's box when sampling tiles.
	Insets Insets
}

// NewCollisionChecker creates a checker. Either source may be nil; a missing
// source never blocks.
func NewCollisionChecker(grid *TileGrid, blockers BlockerSource) *CollisionChecker {
	return &CollisionChecker{grid: grid, blockers: blockers, Insets: DefaultInsets}
}

// Grid returns the tile grid, which may be nil.
func (c *CollisionChecker) Grid() *TileGrid {
	return c.grid
}

// CanMove reports whether a w x h box may occupy pos. Every tile corner and
// every dynamic blocker must agree; one veto rejects.
func (c *CollisionChecker) CanMove(pos Vector2D, w, h int, ctx CollisionContext) bool {
	if c.grid != nil && c.grid.tileSize > 0 {
		left := int(pos.X) + c.Insets.Side
		right := int(pos.X) + w - c.Insets.Side
		top := int(pos.Y) + c.Insets.Top
		// Round the bottom edge up: a box reaching any part of a pixel row
		// covers that row.
		bottom := int(math.Ceil(float64(pos.Y))) + h - c.Insets.Bottom

		ts := c.grid.tileSize
		leftCol, rightCol := left/ts, right/ts
		topRow, bottomRow := top/ts, bottom/ts

		if c.grid.IsSolid(leftCol, topRow) ||
			c.grid.IsSolid(rightCol, topRow) ||
			c.grid.IsSolid(leftCol, bottomRow) ||
			c.grid.IsSolid(rightCol, bottomRow) {
			return false
		}
	}

	if c.blockers == nil {
		return true
	}
	for _, b := range c.blockers.Collidables() {
		if b.SolidAt(pos, w, h, ctx) {
			return false
		}
	}
	return true
}
