package tilecore

import (
	"testing"
)

type stubController struct{ in Intent }

func (c *stubController) Intent() Intent { return c.in }

type soundLog []string

func (s *soundLog) Play(name string) { *s = append(*s, name) }

type eventLog []Event

func (l *eventLog) EmitEvent(e Event) { *l = append(*l, e) }

func (l eventLog) count(t EventType) int {
	n := 0
	for _, e := range l {
		if e.Type == t {
			n++
		}
	}
	return n
}

// floorWorld is 20x10 tiles of 16px with a solid floor on row 8 (y 128..143).
func floorWorld(t *testing.T) (*TileGrid, *CollisionChecker) {
	t.Helper()
	g := newTestGrid(t, 16, filledRows(20, 10, 8))
	return g, NewCollisionChecker(g, nil)
}

func runUntilGrounded(t *testing.T, p *Player, maxFrames int) {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		p.Update(1)
		if p.OnGround() {
			return
		}
	}
	t.Fatalf("player not grounded after %d frames, at %v", maxFrames, p.Position())
}

func TestPlayerLandingIsExact(t *testing.T) {
	const floorTop = 128
	for v := 1; v <= 15; v++ {
		for _, startY := range []float32{0, 0.5, 13.25, 40} {
			_, checker := floorWorld(t)
			p := NewPlayer(PlayerConfig{Position: Vec(64, startY), Collision: checker})
			p.SetVelocity(Vec(0, float32(v)))

			runUntilGrounded(t, p, 200)

			pos := p.Position()
			w, h := p.Size()
			if bottom := pos.Y + float32(h); bottom != floorTop {
				t.Errorf("v=%d y0=%v: bottom edge = %v, want %d", v, startY, bottom, floorTop)
			}
			if !checker.CanMove(pos, w, h, CollisionContext{}) {
				t.Errorf("v=%d y0=%v: landed embedded at %v", v, startY, pos)
			}
			if checker.CanMove(Vec(pos.X, pos.Y+1), w, h, CollisionContext{}) {
				t.Errorf("v=%d y0=%v: one more pixel down is still free at %v", v, startY, pos)
			}
			if p.Velocity().Y != 0 {
				t.Errorf("v=%d y0=%v: velocity after landing = %v", v, startY, p.Velocity())
			}
		}
	}
}

func TestPlayerLandsOnBlockerLikeTiles(t *testing.T) {
	// A platform with its top at 128 rests the player exactly where a floor
	// row starting at 128 does.
	plat := NewMovingPlatform(Vec(40, 128), Vec(40, 128), 100, 16, 10)
	checker := NewCollisionChecker(nil, blockerList{plat})
	for _, v := range []float32{0.5, 3, 7.5, 15} {
		p := NewPlayer(PlayerConfig{Position: Vec(64, 10.25), Collision: checker})
		p.SetVelocity(Vec(0, v))
		runUntilGrounded(t, p, 200)
		_, h := p.Size()
		if bottom := p.Position().Y + float32(h); bottom != 128 {
			t.Errorf("v=%v: bottom edge = %v, want 128", v, bottom)
		}
	}
}

func TestPlayerRestsOnGround(t *testing.T) {
	_, checker := floorWorld(t)
	p := NewPlayer(PlayerConfig{Position: Vec(64, 0), Collision: checker})
	runUntilGrounded(t, p, 200)

	// Allow the sub-pixel settle, then the player must stay grounded.
	p.Update(1)
	p.Update(1)
	rest := p.Position()
	for i := 0; i < 30; i++ {
		p.Update(1)
		if !p.OnGround() {
			t.Fatalf("frame %d: player left the ground while resting at %v", i, p.Position())
		}
		if p.Position() != rest {
			t.Fatalf("frame %d: resting player moved from %v to %v", i, rest, p.Position())
		}
	}
}

func TestPlayerJump(t *testing.T) {
	_, checker := floorWorld(t)
	ctrl := &stubController{}
	var sounds soundLog
	var events eventLog
	p := NewPlayer(PlayerConfig{
		Position:   Vec(64, 0),
		Collision:  checker,
		Controller: ctrl,
		Sounds:     &sounds,
		Events:     &events,
	})
	runUntilGrounded(t, p, 200)
	before := p.Position()

	ctrl.in.Jump = true
	p.Update(1)

	want := DefaultPhysics.JumpImpulse + DefaultPhysics.Gravity
	if got := p.Velocity().Y; got != want {
		t.Errorf("velocity after jump = %v, want %v", got, want)
	}
	if got := p.Position().Y; got != before.Y+want {
		t.Errorf("y after jump = %v, want %v", got, before.Y+want)
	}
	if p.OnGround() {
		t.Error("still on ground after jumping")
	}
	if len(sounds) != 2 || sounds[0] != "land" || sounds[1] != "jump" {
		t.Errorf("sounds = %v, want [land jump]", sounds)
	}
	if events.count(EventJumped) != 1 {
		t.Errorf("jumped events = %d, want 1", events.count(EventJumped))
	}

	// Holding jump in the air does nothing.
	p.Update(1)
	if events.count(EventJumped) != 1 {
		t.Error("jumped again while airborne")
	}
}

func TestPlayerHeadBump(t *testing.T) {
	// Row 1 (y 16..31) is a ceiling.
	g := newTestGrid(t, 16, filledRows(20, 10, 1))
	var events eventLog
	p := NewPlayer(PlayerConfig{
		Position:  Vec(64, 20),
		Collision: NewCollisionChecker(g, nil),
		Events:    &events,
	})
	p.SetVelocity(Vec(0, -10))
	p.Update(1)

	if p.Position().Y != 20 {
		t.Errorf("y = %v, want 20 (rejected rise)", p.Position().Y)
	}
	if p.Velocity().Y != 0 {
		t.Errorf("velocity = %v, want 0 after head bump", p.Velocity().Y)
	}
	if events.count(EventHeadBump) != 1 {
		t.Errorf("head bump events = %d, want 1", events.count(EventHeadBump))
	}
}

func TestPlayerWall(t *testing.T) {
	// Column 10 (x 160..175) is a wall through every row.
	rows := filledRows(20, 10)
	for r := range rows {
		rows[r][10] = solidID
	}
	g := newTestGrid(t, 16, rows)
	ctrl := &stubController{in: Intent{Move: 1}}
	p := NewPlayer(PlayerConfig{
		Position:   Vec(100, 0),
		Collision:  NewCollisionChecker(g, nil),
		Controller: ctrl,
	})
	for i := 0; i < 10; i++ {
		p.Update(1)
	}
	// right sample = x + 48 - 8 must stay below 160.
	if got := p.Position().X; got != 116 {
		t.Errorf("x = %v, want 116", got)
	}
	if p.Velocity().X != 0 {
		t.Errorf("horizontal velocity = %v, want 0 against the wall", p.Velocity().X)
	}
	if p.Facing() != DirectionRight || !p.Moving() {
		t.Error("player should face right and be walking")
	}
}

func TestPlayerHorizontalClamp(t *testing.T) {
	tests := []struct {
		name  string
		start float32
		move  int
		want  float32
	}{
		{"left edge", 2, -1, 0},
		{"right edge", 270, 1, 272},
		{"inside", 100, 1, 104},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(PlayerConfig{
				Position:   Vec(tt.start, 0),
				Controller: &stubController{in: Intent{Move: tt.move}},
				WorldWidth: 320,
			})
			p.Update(1)
			if got := p.Position().X; got != tt.want {
				t.Errorf("x = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlayerWithoutCollisionFalls(t *testing.T) {
	var events eventLog
	p := NewPlayer(PlayerConfig{WorldHeight: 160, Events: &events})
	for i := 0; i < 100; i++ {
		p.Update(1)
	}
	if p.OnGround() {
		t.Error("grounded without any collision source")
	}
	if !p.FellOut(160) {
		t.Errorf("FellOut = false at y=%v", p.Position().Y)
	}
	if p.Velocity().Y != DefaultPhysics.MaxFallSpeed {
		t.Errorf("fall speed = %v, want clamp %v", p.Velocity().Y, DefaultPhysics.MaxFallSpeed)
	}
	if events.count(EventFellOut) != 1 {
		t.Errorf("fell-out events = %d, want 1", events.count(EventFellOut))
	}
}

func TestPlayerElementSwitch(t *testing.T) {
	ctrl := &stubController{in: Intent{Element: ElementWater}}
	var events eventLog
	p := NewPlayer(PlayerConfig{Controller: ctrl, Events: &events})
	p.Update(1)
	p.Update(1)
	if p.Element() != ElementWater {
		t.Errorf("element = %v, want water", p.Element())
	}
	if events.count(EventElementChanged) != 1 {
		t.Errorf("element events = %d, want 1", events.count(EventElementChanged))
	}
	if got := p.CollisionAttribute(); got != ElementAttr(ElementWater) {
		t.Errorf("attribute = %v, want element:water", got)
	}
	p.Carry(KeyAttr("blue"))
	if got := p.CollisionAttribute(); got != KeyAttr("blue") {
		t.Errorf("attribute = %v, want key:blue", got)
	}
}

func TestPlayerKeyedDoor(t *testing.T) {
	scene := NewScene()
	scene.Add(NewDoor(Vec(160, 0), 16, 160, KeyAttr("blue")))
	ctrl := &stubController{in: Intent{Move: 1}}
	p := NewPlayer(PlayerConfig{
		Position:   Vec(100, 0),
		Collision:  NewCollisionChecker(nil, scene),
		Controller: ctrl,
	})
	for i := 0; i < 10; i++ {
		p.Update(1)
	}
	if got := p.Position().X; got != 112 {
		t.Errorf("x = %v, want 112 (stopped touching the door)", got)
	}

	p.Carry(KeyAttr("blue"))
	for i := 0; i < 10; i++ {
		p.Update(1)
	}
	if got := p.Position().X; got <= 112 {
		t.Errorf("x = %v, key holder did not pass the door", got)
	}
}

func TestPlayerAnimation(t *testing.T) {
	p := NewPlayer(PlayerConfig{Controller: &stubController{in: Intent{Move: -1}}})
	for i := 0; i < animationSpeed; i++ {
		p.Update(1)
	}
	if p.AnimationFrame() != 1 {
		t.Errorf("frame = %d, want 1", p.AnimationFrame())
	}
	if p.Facing() != DirectionLeft {
		t.Errorf("facing = %v, want left", p.Facing())
	}
}
