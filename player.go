package tilecore

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Intent is one frame of player input, already translated from keys.
type Intent struct {
	Move     int     // -1 left, 0 none, +1 right
	Jump     bool    // jump requested this frame
	Interact bool    // use the focused interactable
	Element  Element // element to switch to; ElementNone keeps the current one
}

// Controller supplies the player's input once per frame.
type Controller interface {
	Intent() Intent
}

// SoundPlayer plays one-shot sound effects by name. *SoundManager implements it.
type SoundPlayer interface {
	Play(name string)
}

const (
	defaultPlayerWidth  = 48
	defaultPlayerHeight = 64

	framesPerAnimation = 3
	animationSpeed     = 8
)

// PlayerConfig configures NewPlayer. Zero values pick the defaults.
type PlayerConfig struct {
	Position      Vector2D
	Width, Height int
	Physics       Physics
	Controller    Controller
	Collision     *CollisionChecker

	// WorldWidth clamps the player horizontally into [0, WorldWidth-Width].
	// Zero disables the clamp.
	WorldWidth float32
	// WorldHeight is the map height in pixels, used to report falling out of
	// the map. Zero disables the check.
	WorldHeight float32

	// Frames holds walk frames indexed by Direction.SheetRow() then frame.
	Frames [][]*ebiten.Image

	Sounds SoundPlayer
	Events EventSink
}

// Player is the actor driven by the movement resolver: horizontal motion from
// input, jumping, gravity, and axis-separated collision resolution against a
// CollisionChecker with exact floor snapping.
type Player struct {
	position Vector2D
	velocity Vector2D
	width    int
	height   int
	physics  Physics

	facing   Direction
	onGround bool
	moving   bool
	fellOut  bool
	element  Element
	carry    Attribute
	intent   Intent

	frameCounter   int
	animationFrame int
	frames         [][]*ebiten.Image

	controller  Controller
	collision   *CollisionChecker
	worldWidth  float32
	worldHeight float32
	sounds      SoundPlayer
	events      EventSink
}

// NewPlayer creates a player from cfg.
func NewPlayer(cfg PlayerConfig) *Player {
	p := &Player{
		position:    cfg.Position,
		width:       cfg.Width,
		height:      cfg.Height,
		physics:     cfg.Physics.withDefaults(),
		facing:      DirectionRight,
		frames:      cfg.Frames,
		controller:  cfg.Controller,
		collision:   cfg.Collision,
		worldWidth:  cfg.WorldWidth,
		worldHeight: cfg.WorldHeight,
		sounds:      cfg.Sounds,
		events:      cfg.Events,
	}
	if p.width <= 0 {
		p.width = defaultPlayerWidth
	}
	if p.height <= 0 {
		p.height = defaultPlayerHeight
	}
	return p
}

// Update advances the player by one frame. The steps run in a fixed order:
// horizontal move, jump, gravity, vertical move with landing snap, animation,
// horizontal clamp. Physics constants are per frame; dt is not applied.
func (p *Player) Update(dt float64) {
	var in Intent
	if p.controller != nil {
		in = p.controller.Intent()
	}
	p.intent = in

	if in.Element != ElementNone && in.Element != p.element {
		p.element = in.Element
		p.emit(Event{Type: EventElementChanged, Element: p.element})
	}

	p.moveHorizontal(in.Move)

	if in.Jump && p.onGround {
		p.velocity.Y = p.physics.JumpImpulse
		p.onGround = false
		p.play("jump")
		p.emit(Event{Type: EventJumped})
	}

	p.velocity.Y += p.physics.Gravity
	if p.velocity.Y > p.physics.MaxFallSpeed {
		p.velocity.Y = p.physics.MaxFallSpeed
	}

	p.moveVertical()
	p.animate()

	if p.worldWidth > 0 {
		maxX := p.worldWidth - float32(p.width)
		p.position.X = float32(math.Max(0, math.Min(float64(p.position.X), float64(maxX))))
	}

	if p.worldHeight > 0 && !p.fellOut && p.position.Y > p.worldHeight {
		p.fellOut = true
		p.emit(Event{Type: EventFellOut})
	}
}

func (p *Player) moveHorizontal(dir int) {
	move := Zero()
	p.moving = false
	switch {
	case dir < 0:
		move.X = -1
		p.facing = DirectionLeft
		p.moving = true
	case dir > 0:
		move.X = 1
		p.facing = DirectionRight
		p.moving = true
	}

	if move.Length() > 0 {
		move.Normalize()
		move.Scale(p.physics.MoveSpeed)
		p.velocity.X = move.X
	} else {
		p.velocity.X = 0
	}

	test := p.position.Plus(Vec(p.velocity.X, 0))
	if p.canMoveTo(test) {
		p.position.X = test.X
	} else {
		p.velocity.X = 0
	}
}

func (p *Player) moveVertical() {
	test := p.position.Plus(Vec(0, p.velocity.Y))

	switch {
	case p.velocity.Y > 0:
		if p.canMoveTo(test) {
			p.position.Y = test.Y
			p.onGround = false
			return
		}
		p.land()
	case p.velocity.Y < 0:
		if p.canMoveTo(test) {
			p.position.Y = test.Y
			return
		}
		p.velocity.Y = 0
		p.emit(Event{Type: EventHeadBump})
	}
}

// land steps the player down one whole pixel row at a time until the next row
// would collide, then marks it grounded. The first step drops any fraction, so
// the player comes to rest on a pixel boundary. The walk is bounded by the
// rejected displacement, so a blocker that only exists at the far end of the
// fall cannot make it run forever.
func (p *Player) land() {
	limit := int(math.Ceil(float64(p.velocity.Y))) + 1
	for i := 0; i < limit; i++ {
		next := float32(math.Floor(float64(p.position.Y))) + 1
		if !p.canMoveTo(Vec(p.position.X, next)) {
			break
		}
		p.position.Y = next
	}
	wasAirborne := !p.onGround
	p.velocity.Y = 0
	p.onGround = true
	if wasAirborne {
		p.play("land")
		p.emit(Event{Type: EventLanded})
	}
}

func (p *Player) animate() {
	if p.moving || !p.onGround {
		p.frameCounter++
		if p.frameCounter%animationSpeed == 0 {
			p.animationFrame = (p.animationFrame + 1) % framesPerAnimation
		}
		return
	}
	p.frameCounter = 0
	p.animationFrame = 0
}

func (p *Player) canMoveTo(pos Vector2D) bool {
	if p.collision == nil {
		return true
	}
	return p.collision.CanMove(pos, p.width, p.height, CollisionContext{
		Attribute: p.CollisionAttribute(),
		Mover:     p,
	})
}

func (p *Player) play(name string) {
	if p.sounds != nil {
		p.sounds.Play(name)
	}
}

func (p *Player) emit(e Event) {
	if p.events == nil {
		return
	}
	e.Source = p
	e.X, e.Y = p.position.X, p.position.Y
	p.events.EmitEvent(e)
}

// Draw renders the current walk frame, or a magenta box when the player has no
// frames, with an aura in the colour of the carried element.
func (p *Player) Draw(target *ebiten.Image) {
	p.drawGlow(target)

	if img := p.currentFrame(); img != nil {
		b := img.Bounds()
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(p.width)/float64(b.Dx()), float64(p.height)/float64(b.Dy()))
		op.GeoM.Translate(float64(int(p.position.X)), float64(int(p.position.Y)))
		target.DrawImage(img, &op)
		return
	}
	fillRect(target, float32(int(p.position.X)), float32(int(p.position.Y)), float32(p.width), float32(p.height), ColorMagenta)
}

func (p *Player) currentFrame() *ebiten.Image {
	row := p.facing.SheetRow()
	if row >= len(p.frames) || p.animationFrame >= len(p.frames[row]) {
		return nil
	}
	return p.frames[row][p.animationFrame]
}

func (p *Player) drawGlow(target *ebiten.Image) {
	if p.element == ElementNone {
		return
	}
	base := 60.0
	if p.moving {
		base = math.Sin(float64(p.frameCounter)/12)*40 + 80
	}
	c := p.element.GlowColor()
	for i := 3; i > 0; i-- {
		alpha := math.Min(base/float64(i)/2, 100) / 255
		off := float32(i * 8)
		fillRect(target,
			p.position.X-off, p.position.Y-off,
			float32(p.width)+off*2, float32(p.height)+off*2,
			c.WithAlpha(alpha))
	}
}

// Position returns the player's top-left corner.
func (p *Player) Position() Vector2D { return p.position }

// SetPosition teleports the player and clears the fell-out state.
func (p *Player) SetPosition(x, y float32) {
	p.position.Set(x, y)
	p.fellOut = false
}

// Velocity returns the player's current velocity.
func (p *Player) Velocity() Vector2D { return p.velocity }

// SetVelocity overwrites the player's velocity.
func (p *Player) SetVelocity(v Vector2D) { p.velocity = v }

// Size returns the player's box size.
func (p *Player) Size() (w, h int) { return p.width, p.height }

// OnGround reports whether the player landed on the most recent fall check.
func (p *Player) OnGround() bool { return p.onGround }

// Facing returns the direction the player last moved in.
func (p *Player) Facing() Direction { return p.facing }

// Moving reports whether the player walked this frame.
func (p *Player) Moving() bool { return p.moving }

// Element returns the player's current element.
func (p *Player) Element() Element { return p.element }

// SetElement switches the player's element without emitting an event.
func (p *Player) SetElement(e Element) { p.element = e }

// Carry makes the player carry attr (a key, a team tag) into collision checks
// in place of its element. Pass NoAttribute to go back to the element.
func (p *Player) Carry(attr Attribute) { p.carry = attr }

// CollisionAttribute is the attribute the player presents to blockers.
func (p *Player) CollisionAttribute() Attribute {
	if p.carry.Kind() != AttrNone {
		return p.carry
	}
	if p.element == ElementNone {
		return NoAttribute
	}
	return ElementAttr(p.element)
}

// LastIntent returns the input read by the most recent Update.
func (p *Player) LastIntent() Intent { return p.intent }

// AnimationFrame returns the index of the walk frame being shown.
func (p *Player) AnimationFrame() int { return p.animationFrame }

// FellOut reports whether the player is entirely below a map of the given
// pixel height. The core never kills the player; the game decides.
func (p *Player) FellOut(mapPixelHeight float32) bool {
	return p.position.Y > mapPixelHeight
}

// SetCollisionChecker replaces the checker used for movement.
func (p *Player) SetCollisionChecker(c *CollisionChecker) { p.collision = c }

// SetController replaces the input source.
func (p *Player) SetController(c Controller) { p.controller = c }
